package verifier

import (
	"fmt"
	"time"

	"github.com/crillab/gophersat/solver"

	"github.com/harrison/lycan/internal/puzzle"
	"github.com/harrison/lycan/internal/roles"
	"github.com/harrison/lycan/internal/statement"
)

// SATCheck encodes the puzzle into CNF and runs a solve-and-block loop:
// the problem must be satisfiable, the model must be unique, and in shill
// mode the model carries the shill identity. Statements are reified by
// enumerating the valuations of their involved variables, which is
// exponential in scope size and entirely adequate for the N this engine
// targets; scopes never exceed N.
func SATCheck(p *puzzle.Puzzle, opts Options) (Result, error) {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	enc := newEncoder(p.N, opts.HasShill)
	for i, bundle := range p.Bundles {
		enc.speaker(i, bundle)
	}
	enc.structure()

	s := solver.New(solver.ParseSlice(enc.clauses))
	status, err := solveWithTimeout(s, timeout)
	if err != nil {
		return Result{}, err
	}
	if status != solver.Sat {
		return Result{}, fmt.Errorf("%w: SAT encoding is unsatisfiable", ErrNoUniqueSolution)
	}
	model := s.Model()
	res := enc.extract(model)

	// Block the found model and demand unsatisfiability.
	blocking := make([]solver.Lit, 0, 2*p.N)
	for i := 0; i < p.N; i++ {
		v := enc.wolfVar(i)
		if model[v-1] {
			blocking = append(blocking, solver.IntToLit(int32(-v)))
		} else {
			blocking = append(blocking, solver.IntToLit(int32(v)))
		}
	}
	if opts.HasShill {
		for i := 0; i < p.N; i++ {
			v := enc.shillVar(i)
			if model[v-1] {
				blocking = append(blocking, solver.IntToLit(int32(-v)))
			} else {
				blocking = append(blocking, solver.IntToLit(int32(v)))
			}
		}
	}
	s.AppendClause(solver.NewClause(blocking))

	status, err = solveWithTimeout(s, timeout)
	if err != nil {
		return Result{}, err
	}
	if status == solver.Sat {
		second := enc.extract(s.Model())
		return Result{}, fmt.Errorf("%w: SAT found a second model %v besides %v", ErrNoUniqueSolution, second, res)
	}
	return res, nil
}

func solveWithTimeout(s *solver.Solver, timeout time.Duration) (solver.Status, error) {
	done := make(chan solver.Status, 1)
	go func() { done <- s.Solve() }()
	select {
	case status := <-done:
		return status, nil
	case <-time.After(timeout):
		return solver.Indet, fmt.Errorf("%w after %s", ErrTimeout, timeout)
	}
}

// encoder assembles the CNF. Variables 1..N are the werewolf flags; in
// shill mode N+1..2N flag the shill; reification variables follow.
type encoder struct {
	n        int
	hasShill bool
	next     int
	clauses  [][]int
	scratch  []bool
}

func newEncoder(n int, hasShill bool) *encoder {
	next := n + 1
	if hasShill {
		next = 2*n + 1
	}
	return &encoder{n: n, hasShill: hasShill, next: next, scratch: make([]bool, n)}
}

func (e *encoder) wolfVar(i int) int  { return i + 1 }
func (e *encoder) shillVar(i int) int { return e.n + i + 1 }

func (e *encoder) fresh() int {
	v := e.next
	e.next++
	return v
}

func (e *encoder) add(lits ...int) {
	e.clauses = append(e.clauses, lits)
}

// reify returns a variable equivalent to the statement's formula, by truth
// table over the statement's involved villagers.
func (e *encoder) reify(s statement.Statement) int {
	vars := s.Vars()
	a := e.fresh()
	for m := 0; m < 1<<len(vars); m++ {
		clause := make([]int, 0, len(vars)+1)
		for k, villager := range vars {
			set := m&(1<<k) != 0
			e.scratch[villager] = set
			if set {
				clause = append(clause, -e.wolfVar(villager))
			} else {
				clause = append(clause, e.wolfVar(villager))
			}
		}
		if s.Evaluate(e.scratch) {
			clause = append(clause, a)
		} else {
			clause = append(clause, -a)
		}
		e.add(clause...)
	}
	return a
}

// speaker constrains villager i's bundle: the conjunction of their
// statements is true exactly when they are truthful.
func (e *encoder) speaker(i int, bundle []statement.Statement) {
	reified := make([]int, len(bundle))
	for j, s := range bundle {
		reified[j] = e.reify(s)
	}

	var allTrue int
	if len(reified) == 1 {
		allTrue = reified[0]
	} else {
		allTrue = e.fresh()
		back := make([]int, 0, len(reified)+1)
		back = append(back, allTrue)
		for _, a := range reified {
			e.add(-allTrue, a)
			back = append(back, -a)
		}
		e.add(back...)
	}

	w := e.wolfVar(i)
	if !e.hasShill {
		// allTrue <-> !W[i]
		e.add(-allTrue, -w)
		e.add(allTrue, w)
		return
	}
	// allTrue <-> !(W[i] || shill==i)
	sh := e.shillVar(i)
	e.add(-allTrue, -w)
	e.add(-allTrue, -sh)
	e.add(allTrue, w, sh)
}

// structure adds the constraints that do not depend on any bundle: at least
// one werewolf, and in shill mode exactly one shill who is not a werewolf.
func (e *encoder) structure() {
	premise := make([]int, e.n)
	for i := 0; i < e.n; i++ {
		premise[i] = e.wolfVar(i)
	}
	e.add(premise...)

	if !e.hasShill {
		return
	}
	oneOf := make([]int, e.n)
	for i := 0; i < e.n; i++ {
		oneOf[i] = e.shillVar(i)
		e.add(-e.shillVar(i), -e.wolfVar(i))
		for j := i + 1; j < e.n; j++ {
			e.add(-e.shillVar(i), -e.shillVar(j))
		}
	}
	e.add(oneOf...)
}

// extract reads the solution out of a model.
func (e *encoder) extract(model []bool) Result {
	w := make([]bool, e.n)
	for i := 0; i < e.n; i++ {
		w[i] = model[e.wolfVar(i)-1]
	}
	res := Result{Assignment: roles.VectorToIndex(w), Shill: roles.NoShill}
	if e.hasShill {
		for i := 0; i < e.n; i++ {
			if model[e.shillVar(i)-1] {
				res.Shill = i
				break
			}
		}
	}
	return res
}

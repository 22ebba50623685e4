// Command gocsp runs the solver on a couple of built-in demonstration
// problems. It is a smoke-test surface for the library, not a modeling
// language.
package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gitrdm/gocsp/pkg/csp"
)

var (
	log     = logrus.New()
	verbose bool
	limit   int
)

func main() {
	root := &cobra.Command{
		Use:   "gocsp",
		Short: "Finite-domain constraint solver demos",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log.SetLevel(logrus.TraceLevel)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log search internals")
	root.PersistentFlags().IntVarP(&limit, "limit", "l", 0, "stop after this many solutions (0 = all)")

	root.AddCommand(queensCmd())
	root.AddCommand(sendMoreCmd())

	if err := root.Execute(); err != nil {
		log.WithError(err).Fatal("command failed")
	}
}

func newSolver(p *csp.Problem) *csp.Solver {
	return csp.NewSolverWithConfig(p, &csp.SolverConfig{
		ReorderInterval: 1,
		Logger:          log,
	})
}

func queensCmd() *cobra.Command {
	var n int
	cmd := &cobra.Command{
		Use:   "queens",
		Short: "Solve the n-queens puzzle",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := csp.NewProblem()
			if _, err := p.AddGridVar("queens", []int{n}, 0, n-1); err != nil {
				return err
			}
			for i := 0; i < n; i++ {
				for j := i + 1; j < n; j++ {
					i, j := i, j
					err := p.AddConstraint(func(vs ...*csp.View) bool {
						qi, qj := vs[0].At(i), vs[0].At(j)
						if qi == qj {
							return false
						}
						diff := qj - qi
						if diff < 0 {
							diff = -diff
						}
						return diff != j-i
					}, "queens")
					if err != nil {
						return err
					}
				}
			}

			result, err := newSolver(p).Solve(cmd.Context(), limit)
			if err != nil {
				return err
			}
			for _, sol := range result.Solutions {
				fmt.Println(sol.Grid("queens").Values())
			}
			fmt.Printf("%d solutions, %d nodes, %d skips\n",
				len(result.Solutions), result.Nodes, result.Stats.Skips)
			return nil
		},
	}
	cmd.Flags().IntVarP(&n, "size", "n", 6, "board size")
	return cmd
}

func sendMoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sendmore",
		Short: "Solve SEND + MORE = MONEY",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := sendMoreProblem()
			if err != nil {
				return err
			}

			result, err := newSolver(p).Solve(cmd.Context(), limit)
			if err != nil {
				return err
			}
			for _, sol := range result.Solutions {
				send := 1000*sol.Value("s", 0) + 100*sol.Value("e", 0) + 10*sol.Value("n", 0) + sol.Value("d", 0)
				more := 1000*sol.Value("m", 0) + 100*sol.Value("o", 0) + 10*sol.Value("r", 0) + sol.Value("e", 0)
				money := 10000*sol.Value("m", 0) + 1000*sol.Value("o", 0) + 100*sol.Value("n", 0) + 10*sol.Value("e", 0) + sol.Value("y", 0)
				fmt.Printf("%d + %d = %d\n", send, more, money)
			}
			fmt.Printf("%d solutions, %d nodes, %d skips\n",
				len(result.Solutions), result.Nodes, result.Stats.Skips)
			return nil
		},
	}
}

// sendMoreProblem models the classic cryptarithm column by column with
// explicit carry variables, so each constraint reads only a handful of
// cells and failures skip aggressively.
func sendMoreProblem() (*csp.Problem, error) {
	p := csp.NewProblem()

	letters := []struct {
		name   string
		lo, hi int
	}{
		{"s", 1, 9}, {"e", 0, 9}, {"n", 0, 9}, {"d", 0, 9},
		{"m", 1, 9}, {"o", 0, 9}, {"r", 0, 9}, {"y", 0, 9},
	}
	for _, l := range letters {
		if _, err := p.AddIntVar(l.name, l.lo, l.hi); err != nil {
			return nil, err
		}
	}
	for _, c := range []string{"c1", "c2", "c3"} {
		if _, err := p.AddIntVar(c, 0, 1); err != nil {
			return nil, err
		}
	}

	// d + e = y + 10*c1
	if err := p.AddConstraint(func(vs ...*csp.View) bool {
		return vs[0].At(0)+vs[1].At(0) == vs[2].At(0)+10*vs[3].At(0)
	}, "d", "e", "y", "c1"); err != nil {
		return nil, err
	}
	// c1 + n + r = e + 10*c2
	if err := p.AddConstraint(func(vs ...*csp.View) bool {
		return vs[0].At(0)+vs[1].At(0)+vs[2].At(0) == vs[3].At(0)+10*vs[4].At(0)
	}, "c1", "n", "r", "e", "c2"); err != nil {
		return nil, err
	}
	// c2 + e + o = n + 10*c3
	if err := p.AddConstraint(func(vs ...*csp.View) bool {
		return vs[0].At(0)+vs[1].At(0)+vs[2].At(0) == vs[3].At(0)+10*vs[4].At(0)
	}, "c2", "e", "o", "n", "c3"); err != nil {
		return nil, err
	}
	// c3 + s + m = o + 10*m
	if err := p.AddConstraint(func(vs ...*csp.View) bool {
		return vs[0].At(0)+vs[1].At(0)+vs[2].At(0) == vs[3].At(0)+10*vs[2].At(0)
	}, "c3", "s", "m", "o"); err != nil {
		return nil, err
	}

	names := []string{"s", "e", "n", "d", "m", "o", "r", "y"}
	for i := 0; i < len(names); i++ {
		for j := i + 1; j < len(names); j++ {
			err := p.AddConstraint(func(vs ...*csp.View) bool {
				return vs[0].At(0) != vs[1].At(0)
			}, names[i], names[j])
			if err != nil {
				return nil, err
			}
		}
	}
	return p, nil
}

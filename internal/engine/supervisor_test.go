package engine_test

import (
	"context"
	"errors"
	"math/rand"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/rs/zerolog"

	"github.com/san-kum/sortviz/internal/dataset"
	"github.com/san-kum/sortviz/internal/engine"
	"github.com/san-kum/sortviz/internal/sorting"
	"github.com/san-kum/sortviz/internal/visual"
)

func fastOptions() engine.Options {
	return engine.Options{Pacer: sorting.Pacer{}, Seed: 42, Logger: zerolog.Nop()}
}

func allComplete(sup *engine.Supervisor) func() bool {
	return func() bool {
		for _, v := range sup.Snapshot() {
			if !v.Complete {
				return false
			}
		}
		return true
	}
}

func reversed(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = n - i
	}
	return out
}

var _ = Describe("Supervisor", func() {
	var roster []sorting.Strategy

	BeforeEach(func() {
		var err error
		reg := sorting.NewRegistry(sorting.Options{LatencyUnit: time.Millisecond})
		roster, err = reg.Roster(nil)
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("a full roster run", func() {
		It("completes every slot with ordered output", func() {
			sup := engine.New(roster, fastOptions())
			data := dataset.Generate(rand.New(rand.NewSource(1)), 30, 5, 100)

			handles := sup.Restart(data)
			Expect(handles).To(HaveLen(12))
			Eventually(allComplete(sup), 10*time.Second, 10*time.Millisecond).Should(BeTrue())

			for i, v := range sup.Snapshot() {
				Expect(v.Failed()).To(BeFalse(), v.Label)
				Expect(v.Highlights).To(BeEmpty(), v.Label)
				switch roster[i].ID() {
				case "bubble", "insertion", "quick", "merge", "selection", "cocktail", "brutal":
					Expect(dataset.IsSorted(v.Values)).To(BeTrue(), v.Label)
					Expect(dataset.IsPermutation(data, v.Values)).To(BeTrue(), v.Label)
				case "stalin":
					Expect(dataset.IsSorted(v.Values)).To(BeTrue())
					Expect(len(v.Values)).To(BeNumerically("<=", len(data)))
				default:
					Expect(dataset.IsPermutation(data, v.Values)).To(BeTrue(), v.Label)
				}
			}
			for _, h := range handles {
				Eventually(h.Done()).Should(BeClosed())
				Expect(h.Outcome()).To(Equal(engine.OutcomeCompleted))
			}
		})

		It("treats an empty dataset as trivially complete", func() {
			sup := engine.New(roster, fastOptions())
			sup.Restart([]int{})

			Eventually(allComplete(sup)).Should(BeTrue())
			for _, v := range sup.Snapshot() {
				Expect(v.Values).To(BeEmpty())
				Expect(v.Publishes).To(BeNumerically("==", 1))
			}
		})

		It("treats a singleton as trivially complete", func() {
			sup := engine.New(roster, fastOptions())
			sup.Restart([]int{7})

			Eventually(allComplete(sup)).Should(BeTrue())
			for _, v := range sup.Snapshot() {
				Expect(v.Values).To(Equal([]int{7}))
			}
		})

		It("finishes ties without exhausting attempt caps", func() {
			sup := engine.New(roster, fastOptions())
			sup.Restart([]int{5, 5, 5})

			Eventually(allComplete(sup)).Should(BeTrue())
			for _, v := range sup.Snapshot() {
				Expect(v.Values).To(Equal([]int{5, 5, 5}), v.Label)
			}
		})
	})

	Describe("Restart", func() {
		It("lets a released worker finish", func() {
			g := newGated()
			sup := engine.New([]sorting.Strategy{g}, fastOptions())
			sup.Restart([]int{3, 1, 2})
			close(g.release)

			Eventually(func() bool { return sup.Snapshot()[0].Complete }).Should(BeTrue())
			Expect(sup.Snapshot()[0].Values).To(Equal([]int{1, 2, 3}))
		})

		It("resets every slot before the new generation publishes", func() {
			sup := engine.New([]sorting.Strategy{newGated(), newGated()}, fastOptions())

			sup.Restart([]int{3, 1, 2})
			Eventually(func() int { return len(sup.Snapshot()[1].Highlights) }).Should(Equal(1))

			sup.Restart([]int{9, 8})
			for _, v := range sup.Snapshot() {
				Expect(v.Complete).To(BeFalse())
				Expect(v.Highlights).To(BeEmpty())
				Expect(v.Values).To(Equal([]int{9, 8}))
				Expect(v.Generation).To(BeNumerically("==", 2))
			}
			Expect(sup.Generation()).To(BeNumerically("==", 2))
			Expect(sup.Dataset()).To(Equal([]int{9, 8}))
		})

		It("gives every worker a private copy of the dataset", func() {
			sup := engine.New(roster, fastOptions())
			data := reversed(20)
			sup.Restart(data)
			Eventually(allComplete(sup), 5*time.Second).Should(BeTrue())

			Expect(data).To(Equal(reversed(20)))
			Expect(sup.Dataset()).To(Equal(reversed(20)))
		})

		It("cancels the previous generation", func() {
			opts := fastOptions()
			opts.Pacer = sorting.DefaultPacer
			sup := engine.New([]sorting.Strategy{sorting.NewBubble()}, opts)

			first := sup.Restart(reversed(50))
			time.Sleep(50 * time.Millisecond)
			sup.Restart(reversed(10))

			Expect(first[0].Done()).To(BeClosed())
			Expect(first[0].Outcome()).To(Equal(engine.OutcomeCanceled))
			Expect(sup.Stop()).To(BeTrue())
		})

		It("drops late writes from a superseded generation", func() {
			slow := newOblivious(300 * time.Millisecond)
			opts := fastOptions()
			opts.Grace = 20 * time.Millisecond
			sup := engine.New([]sorting.Strategy{slow}, opts)

			sup.Restart([]int{3, 2, 1})
			start := time.Now()
			sup.Restart([]int{6, 5, 4})
			Expect(time.Since(start)).To(BeNumerically("<", 200*time.Millisecond))

			var lateErr error
			Eventually(slow.lateWrite, time.Second).Should(Receive(&lateErr))
			Expect(errors.Is(lateErr, visual.ErrStale)).To(BeTrue())

			Consistently(func() []int { return sup.Snapshot()[0].Values }, 100*time.Millisecond).
				Should(Equal([]int{6, 5, 4}))
			Expect(sup.Snapshot()[0].Complete).To(BeFalse())
			Expect(sup.Snapshot()[0].Generation).To(BeNumerically("==", 2))
			sup.Stop()
		})

		It("increments the generation on every restart", func() {
			sup := engine.New([]sorting.Strategy{newGated()}, fastOptions())
			for i := 1; i <= 3; i++ {
				hs := sup.Restart([]int{2, 1})
				Expect(hs[0].Generation).To(BeNumerically("==", i))
			}
			sup.Stop()
		})
	})

	Describe("Stop", func() {
		It("stops publishing within one pacing interval and never completes", func() {
			opts := fastOptions()
			opts.Pacer = sorting.DefaultPacer
			sup := engine.New([]sorting.Strategy{sorting.NewBubble(), sorting.NewStalin()}, opts)

			hs := sup.Restart(reversed(60))
			time.Sleep(60 * time.Millisecond)
			Expect(sup.Stop()).To(BeTrue())

			for _, h := range hs {
				Expect(h.Outcome()).To(Equal(engine.OutcomeCanceled))
			}
			before := sup.Snapshot()
			Consistently(func() []uint64 {
				var p []uint64
				for _, v := range sup.Snapshot() {
					p = append(p, v.Publishes)
				}
				return p
			}, 150*time.Millisecond).Should(Equal([]uint64{before[0].Publishes, before[1].Publishes}))
			for _, v := range sup.Snapshot() {
				Expect(v.Complete).To(BeFalse())
			}
		})

		It("is safe to call repeatedly and before any restart", func() {
			sup := engine.New(roster, fastOptions())
			Expect(sup.Stop()).To(BeTrue())
			sup.Restart([]int{2, 1})
			Expect(sup.Stop()).To(BeTrue())
			Expect(sup.Stop()).To(BeTrue())
		})
	})

	Describe("fault isolation", func() {
		It("marks faulted slots failed without disturbing siblings", func() {
			roster := []sorting.Strategy{
				panicking{base{"panicking"}},
				failing{base{"failing"}},
				badHighlight{base{"bad-highlight"}},
				sorting.NewBubble(),
			}
			sup := engine.New(roster, fastOptions())
			hs := sup.Restart(reversed(8))

			Eventually(allComplete(sup)).Should(BeTrue())
			views := sup.Snapshot()
			for i := 0; i < 3; i++ {
				Expect(views[i].Failed()).To(BeTrue(), views[i].Label)
				Expect(hs[i].Outcome()).To(Equal(engine.OutcomeFaulted))
				for _, c := range views[i].Highlights {
					Expect(c).To(Equal(visual.ColorError))
				}
			}
			Expect(views[3].Failed()).To(BeFalse())
			Expect(views[3].Values).To(Equal([]int{1, 2, 3, 4, 5, 6, 7, 8}))

			var fault *sorting.FaultError
			Expect(errors.As(hs[0].Err(), &fault)).To(BeTrue())
			var p *sorting.PanicError
			Expect(errors.As(hs[0].Err(), &p)).To(BeTrue())
			Expect(errors.Is(hs[1].Err(), errBroken)).To(BeTrue())
			Expect(errors.Is(hs[2].Err(), visual.ErrHighlightRange)).To(BeTrue())
		})
	})

	Describe("Grace", func() {
		It("exceeds the longest scaled pacing delay", func() {
			opts := fastOptions()
			opts.Pacer = sorting.DefaultPacer
			sup := engine.New(roster, opts)
			Expect(sup.Grace()).To(BeNumerically(">", 300*time.Millisecond))

			half := opts
			half.Pacer = sorting.Pacer{Scale: 0.5}
			Expect(engine.New(roster, half).Grace()).To(BeNumerically(">", 150*time.Millisecond))
			Expect(engine.New(roster, half).Grace()).To(BeNumerically("<", 300*time.Millisecond))
		})

		It("honors an explicit grace", func() {
			opts := fastOptions()
			opts.Grace = time.Second
			Expect(engine.New(roster, opts).Grace()).To(Equal(time.Second))
		})
	})

	Describe("Wait", func() {
		It("returns once the generation is done", func() {
			sup := engine.New(roster, fastOptions())
			sup.Restart([]int{4, 3, 2, 1})
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			Expect(sup.Wait(ctx)).To(Succeed())
		})

		It("gives up when the context ends", func() {
			sup := engine.New([]sorting.Strategy{newGated()}, fastOptions())
			sup.Restart([]int{2, 1})
			ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
			defer cancel()
			Expect(sup.Wait(ctx)).To(MatchError(context.DeadlineExceeded))
			sup.Stop()
		})
	})
})

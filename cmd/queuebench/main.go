// Command queuebench measures the costs a producer/consumer hot loop pays:
// queue handoff, the stop check and the depth-sampling check.
//
// Usage:
//
//	go run ./cmd/queuebench -n 10000000 -size 1024
//	go run ./cmd/queuebench -n 2000000 -size 64 -producers 4 -consumers 4
package main

import (
	"context"
	"flag"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/randomizedcoder/bounded-queue/internal/queue"
	"github.com/randomizedcoder/bounded-queue/internal/shutdown"
	"github.com/randomizedcoder/bounded-queue/internal/tick"
)

type result struct {
	name string
	dur  time.Duration
}

func main() {
	iterations := flag.Int("n", 10_000_000, "number of iterations")
	size := flag.Int("size", 1024, "queue capacity")
	producers := flag.Int("producers", 1, "producer goroutines for the handoff run")
	consumers := flag.Int("consumers", 1, "consumer goroutines for the handoff run")
	flag.Parse()

	if *size < 1 || *producers < 1 || *consumers < 1 || *iterations < 1 {
		fmt.Println("queuebench: -n, -size, -producers and -consumers must be at least 1")
		return
	}

	fmt.Printf("Benchmarking bounded queue (%d iterations, size=%d)\n", *iterations, *size)
	fmt.Printf("Architecture: %s/%s, GOMAXPROCS=%d\n", runtime.GOOS, runtime.GOARCH, runtime.GOMAXPROCS(0))
	fmt.Println("─────────────────────────────────────────────────")

	report("Push + Pop, single goroutine", *iterations, []result{
		{"Channel", pushPopChannel(*iterations, *size)},
		{"Bounded", pushPopBounded(*iterations, *size)},
	})

	report(fmt.Sprintf("Handoff, %d producers -> %d consumers", *producers, *consumers), *iterations, []result{
		{"Channel", handoffChannel(*iterations, *size, *producers, *consumers)},
		{"Bounded", handoffBounded(*iterations, *size, *producers, *consumers)},
	})

	report("Stop check (per produced item)", *iterations, []result{
		{"ContextSignal", stopCheck(*iterations, shutdown.FromContext(context.Background()))},
		{"Flag", stopCheck(*iterations, shutdown.NewFlag())},
	})

	// Long interval so we measure check overhead, not actual ticks
	report("Depth sample check (per popped item)", *iterations, []result{
		{"time.Ticker", stdTickerCheck(*iterations, time.Hour)},
		{"AtomicTicker", tickCheck(*iterations, tick.NewAtomicTicker(time.Hour))},
	})
}

// report prints results relative to the first entry.
func report(title string, iterations int, results []result) {
	fmt.Printf("\n%s:\n", title)
	baseline := float64(results[0].dur.Nanoseconds()) / float64(iterations)
	for _, r := range results {
		perOp := float64(r.dur.Nanoseconds()) / float64(iterations)
		fmt.Printf("  %-16s %12v  %8.2f ns/op  %6.2fx  %8.2f M/s\n",
			r.name, r.dur, perOp, baseline/perOp, 1000/perOp)
	}
}

func pushPopChannel(n, size int) time.Duration {
	ch := make(chan int, size)
	start := time.Now()
	for i := 0; i < n; i++ {
		ch <- i
		<-ch
	}
	return time.Since(start)
}

func pushPopBounded(n, size int) time.Duration {
	q, _ := queue.NewBounded[int](size)
	start := time.Now()
	for i := 0; i < n; i++ {
		q.Push(i)
		q.Pop()
	}
	return time.Since(start)
}

// split divides n items across workers, giving the remainder to worker 0.
func split(n, workers, id int) int {
	per := n / workers
	if id == 0 {
		per += n % workers
	}
	return per
}

func handoffChannel(n, size, producers, consumers int) time.Duration {
	ch := make(chan int, size)

	var cwg sync.WaitGroup
	for c := 0; c < consumers; c++ {
		cwg.Add(1)
		go func() {
			defer cwg.Done()
			for range ch {
			}
		}()
	}

	start := time.Now()
	var pwg sync.WaitGroup
	for p := 0; p < producers; p++ {
		pwg.Add(1)
		go func(count int) {
			defer pwg.Done()
			for i := 0; i < count; i++ {
				ch <- i
			}
		}(split(n, producers, p))
	}
	pwg.Wait()
	close(ch)
	cwg.Wait()
	return time.Since(start)
}

func handoffBounded(n, size, producers, consumers int) time.Duration {
	q, _ := queue.NewBounded[int](size)

	var cwg sync.WaitGroup
	for c := 0; c < consumers; c++ {
		cwg.Add(1)
		go func() {
			defer cwg.Done()
			for {
				if _, ok := q.Pop(); !ok {
					return
				}
			}
		}()
	}

	start := time.Now()
	var pwg sync.WaitGroup
	for p := 0; p < producers; p++ {
		pwg.Add(1)
		go func(count int) {
			defer pwg.Done()
			for i := 0; i < count; i++ {
				q.Push(i)
			}
		}(split(n, producers, p))
	}
	pwg.Wait()
	q.Finish()
	cwg.Wait()
	return time.Since(start)
}

func stopCheck(n int, s shutdown.Signal) time.Duration {
	start := time.Now()
	for i := 0; i < n; i++ {
		_ = s.Requested()
	}
	return time.Since(start)
}

func tickCheck(n int, t tick.Ticker) time.Duration {
	start := time.Now()
	for i := 0; i < n; i++ {
		_ = t.Tick()
	}
	return time.Since(start)
}

func stdTickerCheck(n int, interval time.Duration) time.Duration {
	t := time.NewTicker(interval)
	defer t.Stop()
	start := time.Now()
	for i := 0; i < n; i++ {
		select {
		case <-t.C:
		default:
		}
	}
	return time.Since(start)
}

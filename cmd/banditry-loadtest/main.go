package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MrEthical07/banditry/mask"
	"github.com/MrEthical07/banditry/store"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var bitNames = []string{"read", "write", "execute", "share", "admin"}

func main() {
	var (
		records     = flag.Int("records", 10000, "number of mask records to seed")
		concurrency = flag.Int("concurrency", 64, "number of concurrent workers")
		ops         = flag.Int("ops", 50000, "operations per phase (load + enable)")
		redisAddr   = flag.String("redis-addr", "", "redis address; if empty, REDIS_ADDR env or miniredis is used")
		prefix      = flag.String("prefix", "bm", "record key prefix")
	)
	flag.Parse()

	if *records <= 0 || *concurrency <= 0 || *ops <= 0 {
		fmt.Fprintln(os.Stderr, "records, concurrency, and ops must be > 0")
		os.Exit(2)
	}

	ctx := context.Background()

	addr := *redisAddr
	if addr == "" {
		addr = os.Getenv("REDIS_ADDR")
	}

	var (
		cleanup func()
		client  redis.UniversalClient
	)
	if addr == "" {
		mr, err := miniredis.Run()
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to start miniredis: %v\n", err)
			os.Exit(1)
		}
		addr = mr.Addr()
		client = redis.NewUniversalClient(&redis.UniversalOptions{Addrs: []string{addr}})
		cleanup = func() {
			_ = client.Close()
			mr.Close()
		}
		fmt.Printf("using miniredis at %s\n", addr)
	} else {
		client = redis.NewUniversalClient(&redis.UniversalOptions{Addrs: []string{addr}})
		cleanup = func() { _ = client.Close() }
		fmt.Printf("using redis at %s\n", addr)
	}
	defer cleanup()

	bits := make([]mask.Bit, len(bitNames))
	for i, name := range bitNames {
		bits[i] = mask.Bit{Name: name, Value: 1 << i}
	}
	kind, err := mask.Define("loadtest", bits...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "define kind: %v\n", err)
		os.Exit(1)
	}

	st, err := store.NewStore(client, store.Config{
		Prefix:     *prefix,
		MaxRetries: 64,
		Metrics:    store.MetricsConfig{Enabled: true},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "store: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("seeding %d records...\n", *records)
	startSeed := time.Now()
	for i := 0; i < *records; i++ {
		if err := st.Save(ctx, recordID(i), kind.New(1)); err != nil {
			fmt.Fprintf(os.Stderr, "save failed: %v\n", err)
			os.Exit(1)
		}
	}
	fmt.Printf("seeded in %s\n", time.Since(startSeed).Round(time.Millisecond))

	phases := []phase{
		{name: "load", seed: 7919, op: func(_ *rand.Rand, id string) error {
			_, err := st.Load(ctx, kind, id)
			return err
		}},
		{name: "enable", seed: 6151, op: func(r *rand.Rand, id string) error {
			_, err := st.Enable(ctx, kind, id, bitNames[r.Intn(len(bitNames))])
			return err
		}},
	}

	results := make([]result, 0, len(phases))
	for _, p := range phases {
		results = append(results, p.run(*records, *ops, *concurrency))
	}

	fmt.Println("---- results ----")
	for _, r := range results {
		fmt.Println(r)
	}

	snap := st.MetricsSnapshot()
	fmt.Printf("enable retries=%d conflicts=%d\n",
		snap.Counters[store.MetricEnableRetry],
		snap.Counters[store.MetricEnableConflict],
	)
}

type phase struct {
	name string
	seed int64
	op   func(r *rand.Rand, id string) error
}

// run spreads ops across workers. Each worker keeps its own samples, merged
// once every worker is done.
func (p phase) run(records, ops, concurrency int) result {
	var (
		wg       sync.WaitGroup
		next     atomic.Int64
		failures atomic.Int64
		samples  = make([][]time.Duration, concurrency)
	)

	start := time.Now()
	for w := range concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r := rand.New(rand.NewSource(time.Now().UnixNano() + int64(w)*p.seed))
			for next.Add(1) <= int64(ops) {
				id := recordID(r.Intn(records))
				t0 := time.Now()
				if err := p.op(r, id); err != nil {
					failures.Add(1)
				}
				samples[w] = append(samples[w], time.Since(t0))
			}
		}()
	}
	wg.Wait()

	res := result{name: p.name, total: time.Since(start), failures: failures.Load()}
	for _, s := range samples {
		res.latencies = append(res.latencies, s...)
	}
	slices.Sort(res.latencies)
	return res
}

type result struct {
	name      string
	total     time.Duration
	failures  int64
	latencies []time.Duration
}

// quantile expects sorted latencies.
func (r result) quantile(q float64) time.Duration {
	if len(r.latencies) == 0 {
		return 0
	}
	return r.latencies[int(q*float64(len(r.latencies)-1))]
}

func (r result) String() string {
	n := len(r.latencies)
	var rate float64
	if r.total > 0 {
		rate = float64(n) / r.total.Seconds()
	}
	return fmt.Sprintf("%s: ops=%d failures=%d total=%s ops/sec=%.0f p50=%s p95=%s p99=%s",
		r.name, n, r.failures,
		r.total.Round(time.Millisecond), rate,
		r.quantile(0.50).Round(time.Microsecond),
		r.quantile(0.95).Round(time.Microsecond),
		r.quantile(0.99).Round(time.Microsecond),
	)
}

func recordID(i int) string {
	return fmt.Sprintf("rec-%d", i)
}

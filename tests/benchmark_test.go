package tests

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/ygrebnov/conveyor"
)

func BenchmarkQueue_PushPop(b *testing.B) {
	q := conveyor.NewQueue[conveyor.Item]()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = q.Push(conveyor.Item{Position: i, Key: i})
		_, _ = q.Pop()
	}
}

func BenchmarkQueue_Contended(b *testing.B) {
	for _, consumers := range []int{1, 4, 8} {
		b.Run(fmt.Sprintf("consumers_%d", consumers), func(b *testing.B) {
			q := conveyor.NewQueue[conveyor.Item]()

			var wg sync.WaitGroup
			for i := 0; i < consumers; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for {
						if _, ok := q.Pop(); !ok {
							return
						}
					}
				}()
			}

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = q.Push(conveyor.Item{Position: i, Key: i})
			}
			q.Close()
			wg.Wait()
		})
	}
}

func BenchmarkPipeline_Run(b *testing.B) {
	identity := func(key int) (int, error) { return key, nil }
	p, err := conveyor.New(identity,
		conveyor.WithConsumers(8),
		conveyor.WithKeyRange(0, 256),
	)
	if err != nil {
		b.Fatalf("New returned error: %v", err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := p.Run(context.Background()); err != nil {
			b.Fatalf("Run returned error: %v", err)
		}
	}
}

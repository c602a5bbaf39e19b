package xbound

import (
	"testing"
)

func FuzzCache(f *testing.F) {
	// 种子语料：覆盖不同操作类型与容量档位
	f.Add(1, 100, uint8(0), uint16(50))
	f.Add(0, 0, uint8(1), uint16(0))
	f.Add(-1, 42, uint8(5), uint16(1))
	f.Add(7, -7, uint8(6), uint16(1000))
	f.Add(999, 1, uint8(7), uint16(3))
	f.Add(3, 3, uint8(8), uint16(0))

	// 设计决策: 共享 Cache 实例（而非每次迭代创建新实例），以测试容量控制
	// 在长序列混合操作下的稳定性。监听器故障路径由单元测试覆盖，这里不挂监听器。
	cache, err := New[int, int](Config{MaxCapacity: 100},
		WithLogger[int, int](discardLogger()),
		WithTaskQueueSize[int, int](64))
	if err != nil {
		f.Fatalf("New failed: %v", err)
	}
	f.Cleanup(cache.Close)

	f.Fuzz(func(t *testing.T, key, value int, op uint8, capacity uint16) {
		switch op % 9 {
		case 0:
			cache.Insert(key, value)
		case 1:
			cache.Get(key)
		case 2:
			cache.Invalidate(key)
		case 3:
			cache.Contains(key)
		case 4:
			cache.EntryCount()
		case 5:
			// 队列满的快速失败是合法结果
			_ = cache.SetMaxCapacityAsync(uint64(capacity))
		case 6:
			target := uint64(capacity)
			if err := cache.SetMaxCapacityBlock(target); err != nil {
				t.Fatalf("SetMaxCapacityBlock(%d) failed: %v", target, err)
			}
			// 同步点：返回即收敛（fuzz 单 worker 串行，无并发插入竞争）
			if ws := cache.WeightedSize(); ws > target {
				t.Fatalf("WeightedSize() = %d after converging to %d", ws, target)
			}
		case 7:
			cache.RunPendingTasks()
			if target, ok := cache.Policy().MaxCapacity(); ok {
				if ws := cache.WeightedSize(); ws > target {
					t.Fatalf("WeightedSize() = %d exceeds published capacity %d after drain", ws, target)
				}
			}
		case 8:
			cache.InvalidateAll()
			if got := cache.EntryCount(); got != 0 {
				t.Fatalf("EntryCount() = %d after InvalidateAll", got)
			}
		}
	})
}

func FuzzNew(f *testing.F) {
	f.Add(uint64(0), 128)
	f.Add(uint64(100), 1)
	f.Add(uint64(Unbounded), 0)
	f.Add(uint64(1), maxTaskQueueSize+1)

	f.Fuzz(func(t *testing.T, capacity uint64, queueSize int) {
		cache, err := New[string, int](Config{MaxCapacity: capacity},
			WithTaskQueueSize[string, int](queueSize))
		if err != nil {
			return
		}
		defer cache.Close()

		// 基本操作不应 panic
		cache.Insert("k", 1)
		cache.Get("k")
		cache.Contains("k")
		cache.RunPendingTasks()
		cache.EntryCount()
		cache.WeightedSize()
		cache.Policy().MaxCapacity()
	})
}

package concurrency

import (
	"sync"
	"testing"
)

func TestKeyedLocker(t *testing.T) {
	locker := NewKeyedLocker()

	var btc, usdt int
	wg := sync.WaitGroup{}
	for i := 0; i < 100; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()

			locker.Lock("BTC")
			defer locker.Unlock("BTC")
			btc++
		}()
		go func() {
			defer wg.Done()

			locker.Lock("USDT")
			defer locker.Unlock("USDT")
			usdt++
		}()
	}

	wg.Wait()

	if btc != 100 || usdt != 100 {
		t.Error("lost updates:", btc, usdt)
	}
}

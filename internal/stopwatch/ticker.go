package stopwatch

import (
	"sync"
	"time"
)

// ticker calls fn immediately and then every interval until stopped
type ticker struct {
	done chan struct{}
	wg   sync.WaitGroup
	once sync.Once
}

func startTicker(interval time.Duration, fn func()) *ticker {
	t := &ticker{done: make(chan struct{})}
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		tk := time.NewTicker(interval)
		defer tk.Stop()

		fn()
		for {
			select {
			case <-t.done:
				return
			case <-tk.C:
				// Stop may have raced the tick; done wins.
				select {
				case <-t.done:
					return
				default:
				}
				fn()
			}
		}
	}()
	return t
}

// stop cancels the ticker and waits for its goroutine to exit.
// No fn call starts after stop returns.
func (t *ticker) stop() {
	if t == nil {
		return
	}
	t.once.Do(func() { close(t.done) })
	t.wg.Wait()
}

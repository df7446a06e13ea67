package widget

import (
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestInlineQueue(t *testing.T) {
	Convey("Given an inline queue", t, func() {
		q := NewInlineQueue()
		var order []string

		Convey("A task posted from a running task runs after it", func() {
			q.Post(func() {
				order = append(order, "outer-start")
				q.Post(func() { order = append(order, "inner") })
				order = append(order, "outer-end")
			})
			So(order, ShouldResemble, []string{"outer-start", "outer-end", "inner"})
		})

		Convey("Nothing runs after Stop", func() {
			q.Stop()
			So(q.Post(func() { order = append(order, "late") }), ShouldBeFalse)
			So(order, ShouldBeEmpty)
		})
	})
}

func TestLoop(t *testing.T) {
	Convey("Given a loop", t, func() {
		l := NewLoop()

		Convey("Tasks run in posting order", func() {
			var (
				mu    sync.Mutex
				order []int
				wg    sync.WaitGroup
			)
			wg.Add(100)
			for i := 0; i < 100; i++ {
				i := i
				l.Post(func() {
					mu.Lock()
					order = append(order, i)
					mu.Unlock()
					wg.Done()
				})
			}
			wg.Wait()

			for i, v := range order {
				So(v, ShouldEqual, i)
			}
		})

		Convey("Posting from inside a task does not block", func() {
			done := make(chan struct{})
			l.Post(func() {
				for i := 0; i < 1000; i++ {
					l.Post(func() {})
				}
				l.Post(func() { close(done) })
			})

			select {
			case <-done:
			case <-time.After(5 * time.Second):
				So("loop stalled", ShouldBeEmpty)
			}
		})

		Convey("Stop ends the goroutine and rejects new tasks", func() {
			l.Stop()
			<-l.Done()
			So(l.Post(func() {}), ShouldBeFalse)
		})

		Reset(l.Stop)
	})
}

func TestSubscriptions(t *testing.T) {
	Convey("Given owned subscriptions", t, func() {
		var subs Subscriptions
		var released []int

		subs.Add(func() { released = append(released, 1) })
		subs.Add(func() { released = append(released, 2) })
		subs.Add(nil)
		So(subs.Len(), ShouldEqual, 2)

		Convey("Release cancels in reverse order once", func() {
			subs.Release()
			subs.Release()
			So(released, ShouldResemble, []int{2, 1})
			So(subs.Len(), ShouldEqual, 0)

			Convey("Late additions are cancelled at once", func() {
				subs.Add(func() { released = append(released, 3) })
				So(released, ShouldResemble, []int{2, 1, 3})
			})
		})
	})
}

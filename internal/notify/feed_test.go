package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func drained(sub *Subscription) bool {
	select {
	case <-sub.C:
		return true
	default:
		return false
	}
}

func TestFeed_PublishReachesEverySubscriber(t *testing.T) {
	feed := NewFeed()
	first := feed.Subscribe("orders")
	second := feed.Subscribe("orders")

	feed.Publish("orders")

	assert.True(t, drained(first))
	assert.True(t, drained(second))
}

func TestFeed_TablesAreIndependent(t *testing.T) {
	feed := NewFeed()
	orders := feed.Subscribe("orders")
	products := feed.Subscribe("products")

	feed.Publish("orders")

	assert.True(t, drained(orders))
	assert.False(t, drained(products))
}

func TestFeed_PublishCoalescesWhileUndrained(t *testing.T) {
	feed := NewFeed()
	sub := feed.Subscribe("orders")

	feed.Publish("orders")
	feed.Publish("orders")
	feed.Publish("orders")

	assert.True(t, drained(sub), "one ping is pending")
	assert.False(t, drained(sub), "repeat publishes coalesce into it")
}

func TestFeed_PublishNeverBlocksOnSlowSubscriber(t *testing.T) {
	feed := NewFeed()
	feed.Subscribe("orders") // never drained

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			feed.Publish("orders")
		}
		close(done)
	}()

	<-done
}

func TestFeed_Unsubscribe(t *testing.T) {
	feed := NewFeed()
	sub := feed.Subscribe("orders")
	assert.Equal(t, 1, feed.SubscriberCount("orders"))

	feed.Unsubscribe(sub)

	assert.Equal(t, 0, feed.SubscriberCount("orders"))
	feed.Publish("orders")
	assert.False(t, drained(sub))
}

func TestFeed_PublishWithoutSubscribers(t *testing.T) {
	feed := NewFeed()
	feed.Publish("orders")
}

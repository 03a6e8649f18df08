package fence

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestFence_LatestTicketWins(t *testing.T) {
	f := New()

	first := f.Issue("session-1:catalog")
	second := f.Issue("session-1:catalog")

	assert.False(t, f.IsCurrent(first))
	assert.True(t, f.IsCurrent(second))

	var applied []string
	assert.True(t, f.Commit(second, func() { applied = append(applied, "second") }))
	assert.False(t, f.Commit(first, func() { applied = append(applied, "first") }))
	assert.Equal(t, []string{"second"}, applied)
}

func TestFence_KeysAreIndependent(t *testing.T) {
	f := New()

	a := f.Issue("a")
	b := f.Issue("b")

	assert.True(t, f.IsCurrent(a))
	assert.True(t, f.IsCurrent(b))
}

func TestFence_ForgetDoesNotResurrectOldTickets(t *testing.T) {
	f := New()

	old := f.Issue("a")
	f.Forget("a")
	fresh := f.Issue("a")

	assert.NotEqual(t, old.ID, fresh.ID)
	assert.False(t, f.IsCurrent(old))
	assert.True(t, f.IsCurrent(fresh))
}

func TestFence_PruneDropsIdleKeys(t *testing.T) {
	base := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	now := base
	f := New()
	f.now = func() time.Time { return now }

	idle := f.Issue("anon-1:catalog")
	now = base.Add(10 * time.Minute)
	active := f.Issue("anon-2:catalog")

	removed := f.Prune(base.Add(5 * time.Minute))

	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, f.Len())
	assert.False(t, f.IsCurrent(idle))
	assert.False(t, f.Commit(idle, func() { t.Fatal("pruned ticket must not apply") }))
	assert.True(t, f.IsCurrent(active))

	reissued := f.Issue("anon-1:catalog")
	assert.Greater(t, reissued.ID, active.ID)
	assert.True(t, f.IsCurrent(reissued))
}

func TestFence_PruneKeepsFreshKeys(t *testing.T) {
	f := New()
	for i := 0; i < 3; i++ {
		f.Issue(string(rune('a' + i)))
	}

	assert.Equal(t, 0, f.Prune(time.Now().Add(-time.Hour)))
	assert.Equal(t, 3, f.Len())
	assert.Equal(t, 3, f.Prune(time.Now().Add(time.Hour)))
	assert.Equal(t, 0, f.Len())
}

func TestFence_OutOfOrderCompletion(t *testing.T) {
	defer goleak.VerifyNone(t)

	f := New()
	const n = 50

	tickets := make([]Ticket, n)
	for i := range tickets {
		tickets[i] = f.Issue("catalog")
	}

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		winner = -1
	)
	// Завершаем в обратном порядке: последний выданный тикет приходит первым
	for i := n - 1; i >= 0; i-- {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			f.Commit(tickets[i], func() {
				mu.Lock()
				winner = i
				mu.Unlock()
			})
		}(i)
	}
	wg.Wait()

	require.Equal(t, n-1, winner)
}

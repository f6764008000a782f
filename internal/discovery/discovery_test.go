package discovery

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstanceBaseURL(t *testing.T) {
	inst := Instance{ID: "cards-1", Service: "cards", Scheme: "https", Host: "cards.internal", Port: 9443}
	assert.Equal(t, "https://cards.internal:9443", inst.BaseURL())

	inst.Scheme = ""
	assert.Equal(t, "http://cards.internal:9443", inst.BaseURL(), "scheme defaults to http")
}

func TestInstanceFromURL(t *testing.T) {
	t.Run("explicit port", func(t *testing.T) {
		inst, err := InstanceFromURL("cards", "cards-1", "http://10.0.0.5:9000")
		require.NoError(t, err)
		assert.Equal(t, "10.0.0.5", inst.Host)
		assert.Equal(t, 9000, inst.Port)
		assert.Equal(t, "cards", inst.Service)
	})

	t.Run("default ports", func(t *testing.T) {
		inst, err := InstanceFromURL("cards", "cards-1", "http://cards")
		require.NoError(t, err)
		assert.Equal(t, 80, inst.Port)

		inst, err = InstanceFromURL("cards", "cards-1", "https://cards")
		require.NoError(t, err)
		assert.Equal(t, 443, inst.Port)
	})

	t.Run("rejects unsupported scheme", func(t *testing.T) {
		_, err := InstanceFromURL("cards", "cards-1", "ftp://cards:21")
		assert.ErrorIs(t, err, ErrInvalidInstance)
	})

	t.Run("rejects missing host", func(t *testing.T) {
		_, err := InstanceFromURL("cards", "cards-1", "http://:9000")
		assert.ErrorIs(t, err, ErrInvalidInstance)
	})
}

func TestInstanceValidate(t *testing.T) {
	valid := Instance{ID: "a", Service: "cards", Host: "h", Port: 1}
	require.NoError(t, valid.Validate())

	for name, mutate := range map[string]func(*Instance){
		"service": func(i *Instance) { i.Service = "" },
		"id":      func(i *Instance) { i.ID = "" },
		"host":    func(i *Instance) { i.Host = "" },
		"port":    func(i *Instance) { i.Port = 70000 },
	} {
		t.Run(name, func(t *testing.T) {
			inst := valid
			mutate(&inst)
			assert.ErrorIs(t, inst.Validate(), ErrInvalidInstance)
		})
	}
}

func TestRoundRobin(t *testing.T) {
	instances := []Instance{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	rr := NewRoundRobin()

	var picked []string
	for range 4 {
		inst, err := rr.Pick(instances)
		require.NoError(t, err)
		picked = append(picked, inst.ID)
	}
	assert.Equal(t, []string{"a", "b", "c", "a"}, picked)

	_, err := rr.Pick(nil)
	assert.ErrorIs(t, err, ErrNoInstances)
}

func TestRoundRobinConcurrentPicksSpreadEvenly(t *testing.T) {
	instances := []Instance{{ID: "a"}, {ID: "b"}}
	rr := NewRoundRobin()

	var mu sync.Mutex
	counts := map[string]int{}
	var wg sync.WaitGroup
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			inst, err := rr.Pick(instances)
			if err != nil {
				return
			}
			mu.Lock()
			counts[inst.ID]++
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counts["a"])
	assert.Equal(t, 50, counts["b"])
}

func TestStaticResolver(t *testing.T) {
	r, err := ParseStaticTargets("cards=http://h1:9000, http://h2:9000 ; loans=https://loans.internal")
	require.NoError(t, err)

	cards, err := r.Resolve(context.Background(), "cards")
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, "cards-1", cards[0].ID)
	assert.Equal(t, "http://h2:9000", cards[1].BaseURL())

	loans, err := r.Resolve(context.Background(), "loans")
	require.NoError(t, err)
	assert.Equal(t, "https://loans.internal:443", loans[0].BaseURL())

	_, err = r.Resolve(context.Background(), "accounts")
	assert.ErrorIs(t, err, ErrNoInstances)

	assert.ElementsMatch(t, []string{"cards", "loans"}, r.Services())
}

func TestStaticResolverReturnsCopies(t *testing.T) {
	r := NewStaticResolver(map[string][]Instance{"cards": {{ID: "cards-1", Service: "cards", Host: "h", Port: 1}}})

	first, err := r.Resolve(context.Background(), "cards")
	require.NoError(t, err)
	first[0].Host = "mutated"

	second, err := r.Resolve(context.Background(), "cards")
	require.NoError(t, err)
	assert.Equal(t, "h", second[0].Host)
}

func TestParseStaticTargetsErrors(t *testing.T) {
	cases := map[string]string{
		"missing equals": "cards",
		"empty name":     "=http://h:1",
		"duplicate":      "cards=http://h:1;cards=http://h:2",
		"bad url":        "cards=ftp://h:1",
	}
	for name, targets := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseStaticTargets(targets)
			assert.Error(t, err)
		})
	}
}

func TestParseStaticTargetsEmpty(t *testing.T) {
	r, err := ParseStaticTargets("")
	require.NoError(t, err)
	_, err = r.Resolve(context.Background(), "cards")
	assert.ErrorIs(t, err, ErrNoInstances)
}

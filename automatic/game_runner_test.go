package automatic

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/awasora/candyfall/config"
)

func testConfig() *config.Config {
	return &config.Config{
		TimeThresholdMs: 100,
		SimulationMax:   5000,
		SimSeed:         0,
		ActionSeed:      80,
		Threads:         1,
	}
}

func TestPlayGamesTablePlayer(t *testing.T) {
	r := NewGameRunner(testConfig(), nil)
	results, agg, err := r.PlayGames("table", 3)
	assert.Nil(t, err)
	assert.Len(t, results, 3)
	assert.Equal(t, 3, agg.Iterations())
	for _, res := range results {
		assert.Equal(t, "table", res.Player)
		// A full board always has at least 100 points of singletons.
		assert.GreaterOrEqual(t, res.Score, 100.0)
	}
}

func TestPlayGamesReproducible(t *testing.T) {
	a := NewGameRunner(testConfig(), nil)
	b := NewGameRunner(testConfig(), nil)
	ra, _, err := a.PlayGames("table", 3)
	assert.Nil(t, err)
	rb, _, err := b.PlayGames("table", 3)
	assert.Nil(t, err)
	assert.Equal(t, ra, rb)
}

func TestPlayGamesUnknownPlayer(t *testing.T) {
	r := NewGameRunner(testConfig(), nil)
	_, _, err := r.PlayGames("negamax", 1)
	assert.NotNil(t, err)
}

func TestPlayGamesLogchan(t *testing.T) {
	ch := make(chan string, 10)
	r := NewGameRunner(testConfig(), ch)
	_, _, err := r.PlayGames("random", 2)
	assert.Nil(t, err)
	close(ch)
	lines := []string{}
	for line := range ch {
		lines = append(lines, line)
	}
	assert.Len(t, lines, 2)
}

func TestComparePlayers(t *testing.T) {
	r := NewGameRunner(testConfig(), nil)
	best, aggs, err := r.ComparePlayers([]string{"table", "random"}, 2)
	assert.Nil(t, err)
	assert.Len(t, aggs, 2)
	assert.Contains(t, []string{"table", "random"}, best)
	for _, agg := range aggs {
		assert.Equal(t, 2, agg.Iterations())
	}
}

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RegistersOnGivenRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.DialogueRequests.WithLabelValues(SourceModel).Inc()
	m.QuestRequests.WithLabelValues("quest", SourceFallback).Inc()
	m.QuestRepairs.Add(2)

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["outpost_dialogue_requests_total"])
	assert.True(t, names["outpost_quest_requests_total"])
	assert.True(t, names["outpost_quest_repairs_total"])
	assert.Equal(t, float64(2), testutil.ToFloat64(m.QuestRepairs))
}

func TestNew_SeparateRegistriesDoNotConflict(t *testing.T) {
	assert.NotPanics(t, func() {
		New(prometheus.NewRegistry())
		New(prometheus.NewRegistry())
	})
}

func TestObserveCompletion(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveCompletion("dialogue", time.Now(), nil)
	m.ObserveCompletion("dialogue", time.Now(), errors.New("boom"))
	m.ObserveCompletion("quest", time.Now(), nil)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.CompletionErrors.WithLabelValues("dialogue")))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.CompletionErrors.WithLabelValues("quest")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.CompletionDuration))
}

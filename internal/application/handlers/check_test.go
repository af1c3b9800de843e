package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenomain/PyGMCCG/internal/domain/entities"
	"github.com/thenomain/PyGMCCG/internal/domain/services"
)

func TestCheckHandler_Attribute(t *testing.T) {
	env := newTestEnv(t)
	handler := NewCheckHandler(env.traits)

	result, err := handler.Handle(context.Background(), CheckRequest{
		Kind:    entities.KindAttribute,
		Name:    "str",
		Value:   "3",
		Offsets: map[string]int{"Vigor": 2, "wounded": -1},
	})
	require.NoError(t, err)
	assert.Equal(t, "Strength", result.Name)
	assert.Equal(t, 3, result.Value)
	assert.Equal(t, 1, result.Min)
	assert.Equal(t, 5, result.Max)
	assert.Equal(t, 1, result.OffsetSum)
	assert.Equal(t, 4, result.Effective)
	assert.Equal(t, []string{entities.TagPhysical, entities.TagForce}, result.Tags)
	assert.Equal(t, []string{"Vigor", "wounded"}, result.SortedReasons())
}

func TestCheckHandler_RaisedMax(t *testing.T) {
	env := newTestEnv(t)
	handler := NewCheckHandler(env.traits)

	result, err := handler.Handle(context.Background(), CheckRequest{
		Kind: entities.KindAttribute, Name: "Wits", Value: "7", Max: 7,
	})
	require.NoError(t, err)
	assert.Equal(t, 7, result.Max)
}

func TestCheckHandler_Numeric(t *testing.T) {
	env := newTestEnv(t)
	handler := NewCheckHandler(env.traits)

	result, err := handler.Handle(context.Background(), CheckRequest{
		Kind: entities.KindNumeric, Category: "skill", Name: "occ", Value: "2",
	})
	require.NoError(t, err)
	assert.Equal(t, "Occult", result.Name)
	assert.Nil(t, result.Tags)
	assert.Equal(t, 2, result.Effective)
}

func TestCheckHandler_Errors(t *testing.T) {
	env := newTestEnv(t)
	handler := NewCheckHandler(env.traits)
	ctx := context.Background()

	tests := []struct {
		name    string
		req     CheckRequest
		wantErr error
	}{
		{name: "out of range", req: CheckRequest{Kind: entities.KindAttribute, Name: "Wits", Value: "6"}, wantErr: entities.ErrRange},
		{name: "not an integer", req: CheckRequest{Kind: entities.KindAttribute, Name: "Wits", Value: "high"}, wantErr: entities.ErrCoercion},
		{name: "ambiguous", req: CheckRequest{Kind: entities.KindAttribute, Name: "s", Value: "1"}, wantErr: entities.ErrAmbiguousMatch},
		{name: "zero offset", req: CheckRequest{Kind: entities.KindAttribute, Name: "Wits", Value: "1", Offsets: map[string]int{"none": 0}}, wantErr: entities.ErrOffsetFormat},
		{name: "numeric needs category", req: CheckRequest{Kind: entities.KindNumeric, Name: "Brawl", Value: "1"}, wantErr: services.ErrCategoryRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := handler.Handle(ctx, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, err := handler.Handle(ctx, CheckRequest{Kind: entities.KindPool, Name: "Willpower"})
	assert.ErrorContains(t, err, "unsupported trait kind")
}

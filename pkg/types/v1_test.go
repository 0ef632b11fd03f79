// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestV1TopicItemKeepsUnknownMembers(t *testing.T) {
	in := `{"topic":"Books","route":"app/notes/1/math1/books","badge":"new","pinned":true}`

	var it V1TopicItem
	require.NoError(t, json.Unmarshal([]byte(in), &it))
	assert.Equal(t, "Books", it.Topic)
	assert.Equal(t, "app/notes/1/math1/books", it.Route)
	require.Len(t, it.Extra, 2)

	out, err := json.Marshal(it)
	require.NoError(t, err)
	assert.JSONEq(t, in, string(out))
}

func TestV1TopicItemKnownShapeStaysComparable(t *testing.T) {
	var it V1TopicItem
	require.NoError(t, json.Unmarshal([]byte(`{"topic":"Books","route":"r"}`), &it))
	assert.Equal(t, V1TopicItem{Topic: "Books", Route: "r"}, it)

	out, err := json.Marshal(it)
	require.NoError(t, err)
	assert.Equal(t, `{"topic":"Books","route":"r"}`, string(out))
}

func TestV1LeafItemKeepsUnknownMembers(t *testing.T) {
	in := `{"title":"Calculus","url":"http://calc","author":"Akib"}`

	var it V1LeafItem
	require.NoError(t, json.Unmarshal([]byte(in), &it))
	assert.Equal(t, "Calculus", it.Title)
	require.Len(t, it.Extra, 1)

	out, err := json.Marshal(it)
	require.NoError(t, err)
	assert.JSONEq(t, in, string(out))
}

func TestV1LeafItemLiteralMarshal(t *testing.T) {
	out, err := json.Marshal(V1LeafItem{Title: "X", URL: "http://y"})
	require.NoError(t, err)
	assert.Equal(t, `{"title":"X","url":"http://y"}`, string(out))
}

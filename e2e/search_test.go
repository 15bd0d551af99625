//go:build e2e && unix

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPlants = []map[string]any{
	{"id": 1, "name": "Willow", "scientific_name": "Salix alba", "category": "Trees"},
	{"id": 2, "name": "Wild Yam", "scientific_name": "Dioscorea villosa", "category": "Roots"},
	{"id": 3, "name": "Tulsi", "scientific_name": "Ocimum sanctum", "category": "Herbs"},
}

func startSearchApp(t *testing.T, plants []map[string]any) *TUITestFramework {
	t.Helper()
	tf := NewTUITest(t)
	t.Cleanup(tf.Cleanup)

	_, err := tf.CreateWorkspace(plants)
	require.NoError(t, err, "Failed to create test workspace")
	require.NoError(t, tf.StartApp(), "Failed to start app")
	require.True(t, tf.Ready(), "Should show the search prompt")
	return tf
}

func readHistory(t *testing.T, tf *TUITestFramework) []string {
	t.Helper()
	data, err := os.ReadFile(tf.HistoryPath())
	require.NoError(t, err)

	var store map[string]string
	require.NoError(t, json.Unmarshal(data, &store))
	var entries []string
	require.NoError(t, json.Unmarshal([]byte(store["searchHistory"]), &entries))
	return entries
}

func TestSearchShowsResults(t *testing.T) {
	t.Parallel()
	tf := startSearchApp(t, testPlants)

	require.NoError(t, tf.Type("wil"))

	if err := tf.WaitForE(containsPlain("Salix alba"), 3*time.Second, "results never rendered"); err != nil {
		t.Fatal(err)
	}
	assert.True(t, tf.SeePlain("Wild Yam"))
}

func TestSearchNoResults(t *testing.T) {
	t.Parallel()
	tf := startSearchApp(t, testPlants)

	require.NoError(t, tf.Type("zz"))

	assert.True(t, tf.SeePlain("No results found for zz"))
	assert.Empty(t, readHistory(t, tf))
}

func TestViewAllAffordance(t *testing.T) {
	t.Parallel()
	var plants []map[string]any
	for i := 1; i <= 8; i++ {
		plants = append(plants, map[string]any{"id": i, "name": fmt.Sprintf("Ashwagandha %d", i)})
	}
	tf := startSearchApp(t, plants)

	require.NoError(t, tf.Type("ash"))

	assert.True(t, tf.SeePlain("View all 8 results"))
}

func TestHistoryIsPersisted(t *testing.T) {
	t.Parallel()
	tf := startSearchApp(t, testPlants)

	require.NoError(t, tf.Type("tul"))
	require.True(t, tf.SeePlain("Ocimum sanctum"))
	require.True(t, tf.SeePlain("Recent searches"))

	done := make(chan error, 1)
	go func() { done <- tf.cmd.Wait() }()
	tf.Quit()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("app did not exit after quit")
	}

	assert.Equal(t, []string{"tul"}, readHistory(t, tf))
}

func containsPlain(text string) func(string) bool {
	return func(s string) bool {
		return strings.Contains(ansiRe.ReplaceAllString(s, ""), text)
	}
}

func TestCategoryCycling(t *testing.T) {
	t.Parallel()
	tf := startSearchApp(t, testPlants)

	require.NoError(t, tf.Type("wi"))
	require.True(t, tf.SeePlain("Dioscorea villosa"))

	require.NoError(t, tf.SendKeys(KeyTab))

	assert.True(t, tf.SeePlain("[Roots]"))
	assert.True(t, tf.SeePlain(`1 hidden by category "Roots"`))
}

func TestHistoryRecall(t *testing.T) {
	t.Parallel()
	tf := startSearchApp(t, testPlants)

	require.NoError(t, tf.Type("tul"))
	require.True(t, tf.SeePlain("Ocimum sanctum"))
	require.NoError(t, tf.Type(strings.Repeat(KeyBack, 3)))

	require.NoError(t, tf.SendKeys(KeyUp))

	assert.True(t, tf.SeePlain("> tul"))
}

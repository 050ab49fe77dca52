//go:build integration

package integration

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEntityWorkflow_CompleteJourney creates, updates, annotates and deletes a character
func TestEntityWorkflow_CompleteJourney(t *testing.T) {
	config := LoadTestConfig(t)
	config.SkipIfMissingConfig(t)

	runner := NewCommandRunner(config, t)
	name := GenerateTestName("workflow-character")

	// 1. Create the character
	created := runner.RunJSON("characters", "create", "--name", name, "--set", "title=Captain", "--private", "true")
	id := IntField(t, created, "id")
	entityID := IntField(t, created, "entity_id")

	defer runner.CleanupEntity("characters", id)

	assert.Equal(t, name, created["name"])
	assert.Equal(t, "Captain", created["title"])

	// 2. Fetch it back
	fetched := runner.RunJSON("characters", "get", fmt.Sprint(id))
	assert.Equal(t, float64(entityID), fetched["entity_id"])

	// 3. Update one field
	updated := runner.RunJSON("characters", "update", fmt.Sprint(id), "--set", "age=41")
	assert.Equal(t, "41", fmt.Sprint(updated["age"]))
	assert.Equal(t, name, updated["name"])

	// 4. Attach and read back a post
	post := runner.RunJSON("posts", "create", fmt.Sprint(entityID),
		"--name", "Backstory", "--entry", "<p>Born at sea</p>", "--visibility", "admin")
	postID := IntField(t, post, "id")

	stdout, stderr, err := runner.Run("posts", "list", fmt.Sprint(entityID))
	require.NoError(t, err, "Failed to list posts: %s", stderr)
	assert.Contains(t, stdout, "Backstory")

	_, stderr, err = runner.Run("posts", "delete", fmt.Sprint(entityID), fmt.Sprint(postID), "--force")
	require.NoError(t, err, "Failed to delete post: %s", stderr)

	// 5. Add an alias and find the character through search
	_, stderr, err = runner.Run("assets", "add-alias", fmt.Sprint(entityID), "--name", name+"-alias")
	require.NoError(t, err, "Failed to add alias: %s", stderr)

	stdout, stderr, err = runner.Run("search", name)
	require.NoError(t, err, "Failed to search: %s", stderr)
	assert.Contains(t, stdout, name)
}

// TestEntityWorkflow_ManagedImage uploads an entry image placeholder twice and
// expects the second update to reuse the first upload
func TestEntityWorkflow_ManagedImage(t *testing.T) {
	config := LoadTestConfig(t)
	config.SkipIfMissingConfig(t)

	image := os.Getenv("KANKA_TEST_IMAGE")
	if image == "" {
		t.Skip("KANKA_TEST_IMAGE not set, skipping managed image test")
	}

	runner := NewCommandRunner(config, t)

	created := runner.RunJSON("notes", "create",
		"--name", GenerateTestName("workflow-note"),
		"--entry", `<p><img src="portrait"></p>`,
		"--image", "portrait="+image)
	id := IntField(t, created, "id")
	entityID := IntField(t, created, "entity_id")

	defer runner.CleanupEntity("notes", id)

	assert.NotContains(t, created["entry"], `src="portrait"`)

	runner.RunJSON("notes", "update", fmt.Sprint(id),
		"--entry", `<p><img src="portrait"></p>`,
		"--image", "portrait="+image)

	stdout, stderr, err := runner.Run("assets", "list", fmt.Sprint(entityID), "--output", "json")
	require.NoError(t, err, "Failed to list assets: %s", stderr)
	assert.Contains(t, stdout, "portrait:")
}

// TestConfigWorkflow_SetShowUnset round-trips config values through the file
func TestConfigWorkflow_SetShowUnset(t *testing.T) {
	config := LoadTestConfig(t)
	config.SkipIfMissingConfig(t)

	runner := NewCommandRunner(config, t)

	_, stderr, err := runner.Run("config", "set", "output", "yaml")
	require.NoError(t, err, "Failed to set output: %s", stderr)

	data, err := os.ReadFile(filepath.Clean(config.ConfigPath))
	require.NoError(t, err)
	assert.Contains(t, string(data), "output: yaml")
	assert.NotContains(t, string(data), config.Token)

	_, stderr, err = runner.Run("config", "unset", "output")
	require.NoError(t, err, "Failed to unset output: %s", stderr)
}

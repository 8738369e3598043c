package cmd

import (
	"fmt"
	"strings"

	"tdo/internal/apiclient"
)

// resolveTaskID expands a possibly-shortened task id to the full id by
// prefix match against the user's tasks.
func resolveTaskID(client *apiclient.Client, userID, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("task id required")
	}

	tasks, err := client.ListTasks(userID)
	if err != nil {
		return "", err
	}

	var matches []string
	for i := range tasks {
		if tasks[i].ID == input {
			return input, nil
		}
		if strings.HasPrefix(tasks[i].ID, input) {
			matches = append(matches, tasks[i].ID)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		// Let the server produce the canonical not-found error.
		return input, nil
	default:
		return "", fmt.Errorf("ambiguous task id %q matches %d tasks", input, len(matches))
	}
}

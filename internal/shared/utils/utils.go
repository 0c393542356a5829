package utils

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/hibiken/asynq"
)

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify converts a display name into a URL slug.
// "Kundan Gold Necklace" -> "kundan-gold-necklace"
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugPattern.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// MarshalTask marshals a payload into an asynq task.
func MarshalTask(taskType string, payload interface{}) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal task %s: %w", taskType, err)
	}
	return asynq.NewTask(taskType, b), nil
}

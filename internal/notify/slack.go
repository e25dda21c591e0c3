package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rh-rosa-lab/rosactl/pkg/types"
)

// Notifier publishes cluster lifecycle events to an operator channel.
// Implementations must be safe for concurrent use; delivery is best-effort.
type Notifier interface {
	ClusterSubmitted(ctx context.Context, cluster *types.Cluster) error
	ClusterDeleted(ctx context.Context, cluster *types.Cluster) error
}

// Nop is a Notifier that discards all events
type Nop struct{}

func (Nop) ClusterSubmitted(ctx context.Context, cluster *types.Cluster) error { return nil }
func (Nop) ClusterDeleted(ctx context.Context, cluster *types.Cluster) error   { return nil }

// Slack posts events to a Slack incoming webhook
type Slack struct {
	webhookURL string
	httpClient *http.Client
	channel    string
}

// NewSlack creates a Slack notifier. channel may be empty to use the
// webhook's default.
func NewSlack(webhookURL, channel string) *Slack {
	return &Slack{
		webhookURL: webhookURL,
		channel:    channel,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type slackMessage struct {
	Channel string `json:"channel,omitempty"`
	Text    string `json:"text"`
}

// ClusterSubmitted announces a newly accepted cluster request
func (s *Slack) ClusterSubmitted(ctx context.Context, cluster *types.Cluster) error {
	text := fmt.Sprintf(":rocket: Cluster creation started: *%s* (%s) in %s, version %s",
		cluster.Name, cluster.ID, cluster.Region, cluster.Version)
	return s.post(ctx, text)
}

// ClusterDeleted announces a cluster deletion request
func (s *Slack) ClusterDeleted(ctx context.Context, cluster *types.Cluster) error {
	text := fmt.Sprintf(":wastebasket: Cluster deletion started: *%s* (%s)",
		cluster.Name, cluster.ID)
	return s.post(ctx, text)
}

func (s *Slack) post(ctx context.Context, text string) error {
	body, err := json.Marshal(slackMessage{
		Channel: s.channel,
		Text:    text,
	})
	if err != nil {
		return fmt.Errorf("marshal slack message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build slack request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post slack message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("slack webhook returned HTTP %d", resp.StatusCode)
	}

	return nil
}

package token

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"cloud.google.com/go/pubsub"
	"google.golang.org/api/option"

	"fantasy-gateway/internal/common/errors"
	"fantasy-gateway/internal/common/logging"
)

// Mirror propagates freshly refreshed credentials to a secondary destination.
// Mirrors run best-effort after the durable store has been updated: a failing
// mirror is logged and skipped, it never fails the refresh itself.
type Mirror interface {
	Name() string
	Mirror(ctx context.Context, creds *Credentials) error
}

// LauncherConfigMirror writes credentials into a launcher JSON config file so
// external tools started from that config pick up the new token without a
// restart. Only an entry that already exists under "servers" is updated; the
// rest of the document is preserved as-is.
type LauncherConfigMirror struct {
	path   string
	entry  string
	logger logging.Logger
}

// NewLauncherConfigMirror creates a mirror targeting the server entry named
// entry inside the launcher config at path.
func NewLauncherConfigMirror(path, entry string, logger logging.Logger) *LauncherConfigMirror {
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}
	return &LauncherConfigMirror{
		path:   path,
		entry:  entry,
		logger: logger,
	}
}

func (m *LauncherConfigMirror) Name() string {
	return "launcher-config"
}

// Mirror merges the credential env keys into servers.<entry>.env. A missing
// config file or a missing server entry is not an error, there is simply
// nothing to update.
func (m *LauncherConfigMirror) Mirror(ctx context.Context, creds *Credentials) error {
	if creds == nil {
		return errors.ValidationError("credentials are required")
	}

	raw, err := os.ReadFile(m.path)
	if err != nil {
		if os.IsNotExist(err) {
			m.logger.Debug("No launcher config file found, skipping update",
				logging.Field{Key: "path", Value: m.path},
			)
			return nil
		}
		return fmt.Errorf("failed to read launcher config %s: %w", m.path, err)
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("failed to parse launcher config %s: %w", m.path, err)
	}

	servers, ok := doc["servers"].(map[string]interface{})
	if !ok {
		m.logger.Debug("Launcher config has no servers section, skipping update",
			logging.Field{Key: "path", Value: m.path},
		)
		return nil
	}

	server, ok := servers[m.entry].(map[string]interface{})
	if !ok {
		m.logger.Debug("Launcher config has no matching server entry, skipping update",
			logging.Field{Key: "path", Value: m.path},
			logging.Field{Key: "entry", Value: m.entry},
		)
		return nil
	}

	env, ok := server["env"].(map[string]interface{})
	if !ok {
		env = make(map[string]interface{})
		server["env"] = env
	}
	for key, value := range credentialKeys(creds) {
		env[key] = value
	}

	updated, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode launcher config: %w", err)
	}
	if err := os.WriteFile(m.path, updated, 0600); err != nil {
		return fmt.Errorf("failed to write launcher config %s: %w", m.path, err)
	}

	m.logger.Debug("Updated launcher config with refreshed credentials",
		logging.Field{Key: "path", Value: m.path},
		logging.Field{Key: "entry", Value: m.entry},
	)
	return nil
}

// RotationEvent is the payload published for each successful token rotation.
// It deliberately carries no token material, only enough for sibling replicas
// to know they should reload credentials from the shared store.
type RotationEvent struct {
	TokenType string    `json:"token_type"`
	ExpiresAt time.Time `json:"expires_at"`
	RotatedAt time.Time `json:"rotated_at"`
}

// AnnouncerConfig holds the Google Cloud Pub/Sub settings for rotation
// announcements. CredentialsJSON is optional, Application Default Credentials
// are used when it is empty.
type AnnouncerConfig struct {
	ProjectID       string
	Topic           string
	CredentialsJSON string
}

// Validate checks required fields and applies defaults.
func (c *AnnouncerConfig) Validate() error {
	if c.ProjectID == "" {
		return errors.ConfigError("announcer project id is required")
	}
	if c.Topic == "" {
		c.Topic = "token-rotations"
	}
	return nil
}

// RotationAnnouncer publishes a RotationEvent to a Pub/Sub topic after each
// successful refresh.
type RotationAnnouncer struct {
	client *pubsub.Client
	topic  *pubsub.Topic
	logger logging.Logger
	now    func() time.Time
}

// NewRotationAnnouncer connects to Pub/Sub and verifies the configured topic
// exists. The caller owns the announcer and must Close it on shutdown.
func NewRotationAnnouncer(ctx context.Context, config AnnouncerConfig, logger logging.Logger) (*RotationAnnouncer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}

	var opts []option.ClientOption
	if config.CredentialsJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(config.CredentialsJSON)))
	}

	client, err := pubsub.NewClient(ctx, config.ProjectID, opts...)
	if err != nil {
		return nil, errors.ConnectionError("failed to create Pub/Sub client", err)
	}

	topic := client.Topic(config.Topic)
	exists, err := topic.Exists(ctx)
	if err != nil {
		client.Close()
		return nil, errors.ConnectionError("failed to check topic existence", err)
	}
	if !exists {
		client.Close()
		return nil, errors.ConfigError(fmt.Sprintf("topic %s does not exist", config.Topic))
	}

	// Rotation events are rare, publish each one immediately instead of
	// waiting for a batch to fill.
	topic.PublishSettings.CountThreshold = 1
	topic.PublishSettings.DelayThreshold = 10 * time.Millisecond

	return &RotationAnnouncer{
		client: client,
		topic:  topic,
		logger: logger,
		now:    time.Now,
	}, nil
}

func (a *RotationAnnouncer) Name() string {
	return "rotation-announcer"
}

// Mirror publishes the rotation event and waits for the server acknowledgment.
func (a *RotationAnnouncer) Mirror(ctx context.Context, creds *Credentials) error {
	if creds == nil {
		return errors.ValidationError("credentials are required")
	}

	data, err := rotationPayload(creds, a.now())
	if err != nil {
		return errors.InternalError("failed to encode rotation event", err)
	}

	result := a.topic.Publish(ctx, &pubsub.Message{
		Data: data,
		Attributes: map[string]string{
			"event": "token-rotation",
		},
	})

	messageID, err := result.Get(ctx)
	if err != nil {
		return errors.ConnectionError("failed to publish rotation event", err)
	}

	a.logger.Debug("Published token rotation event",
		logging.Field{Key: "message_id", Value: messageID},
		logging.Field{Key: "topic", Value: a.topic.ID()},
	)
	return nil
}

// Close stops the topic's publish goroutines and releases the client.
func (a *RotationAnnouncer) Close() error {
	a.topic.Stop()
	return a.client.Close()
}

func rotationPayload(creds *Credentials, now time.Time) ([]byte, error) {
	return json.Marshal(RotationEvent{
		TokenType: creds.TokenType,
		ExpiresAt: creds.ExpiresAt.UTC(),
		RotatedAt: now.UTC(),
	})
}

var (
	_ Mirror = (*LauncherConfigMirror)(nil)
	_ Mirror = (*RotationAnnouncer)(nil)
)

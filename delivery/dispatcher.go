package delivery

import (
	"log/slog"
)

// Channel names accepted by the dispatcher.
const (
	ChannelEmail    = "email"
	ChannelChat     = "chat"
	ChannelWhatsApp = "whatsapp"
)

type channelConfig struct {
	enabled          bool
	defaultRecipient string
}

// Dispatcher routes finished responses to their delivery channel. Chat
// responses are returned inline by the API, so delivery there is a log
// record; the email and whatsapp channels are simplified to a structured
// log of the outgoing message.
type Dispatcher struct {
	email    channelConfig
	whatsapp channelConfig
	logger   *slog.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		if logger == nil {
			logger = slog.Default()
		}
		d.logger = logger
	}
}

// WithEmail enables the email channel with a default recipient used when a
// request names none.
func WithEmail(defaultRecipient string) Option {
	return func(d *Dispatcher) {
		d.email = channelConfig{enabled: true, defaultRecipient: defaultRecipient}
	}
}

// WithWhatsApp enables the whatsapp channel with a default number used when
// a request names none.
func WithWhatsApp(defaultRecipient string) Option {
	return func(d *Dispatcher) {
		d.whatsapp = channelConfig{enabled: true, defaultRecipient: defaultRecipient}
	}
}

// NewDispatcher creates a dispatcher with only the chat channel enabled.
func NewDispatcher(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch routes the response to the named channel. Unknown channels and
// missing recipients are logged, never fatal: the caller already has the
// response in hand.
func (d *Dispatcher) Dispatch(channel, response, recipient string) {
	switch channel {
	case ChannelEmail:
		d.send(ChannelEmail, d.email, recipient, response)
	case ChannelWhatsApp:
		d.send(ChannelWhatsApp, d.whatsapp, recipient, response)
	case ChannelChat:
		d.logger.Info("delivered response", "channel", ChannelChat)
	default:
		d.logger.Warn("unknown delivery channel", "channel", channel)
	}
}

func (d *Dispatcher) send(channel string, cfg channelConfig, recipient, response string) {
	if !cfg.enabled {
		d.logger.Warn("delivery channel is disabled", "channel", channel, "recipient", recipient)
		return
	}
	if recipient == "" {
		recipient = cfg.defaultRecipient
	}
	if recipient == "" {
		d.logger.Warn("delivery skipped, no recipient", "channel", channel)
		return
	}
	// Simplified transport: record the outgoing message.
	d.logger.Info("delivered response",
		"channel", channel, "recipient", recipient, "bytes", len(response))
}

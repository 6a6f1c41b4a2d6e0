package bridge

// PaymentData is the payment confirmation serialized to the native wrapper.
// Field names are part of the wrapper contract.
type PaymentData struct {
	TotalPrice float64 `json:"totalPrice"`
	Quantity   int     `json:"quantity"`
	MuseumID   string  `json:"museumId"`
	Timestamp  int64   `json:"timestamp"`
}

// Channel identifies which bridge transport a notification goes through.
type Channel string

const (
	ChannelNone           Channel = "none"
	ChannelDirectCall     Channel = "direct_call"
	ChannelMessageHandler Channel = "message_handler"
	ChannelPostMessage    Channel = "post_message"
)

// Config describes the transports a host wrapper may provide.
type Config struct {
	SocketPath   string
	KafkaBrokers []string
	PaymentTopic string
	WebhookURL   string
}

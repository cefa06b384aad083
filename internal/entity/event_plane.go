package entity

import "fmt"

// EventPlaneConfig - everything a client needs to subscribe to real-time
// change notifications for a Gaming Session.
type EventPlaneConfig struct {
	// Address of the real-time messaging broker.
	BrokerAddress string `json:"broker_address"`

	// Broker port number of the real-time messaging broker.
	BrokerPort int `json:"broker_port"`

	// Channel used to namespace the messaging. This is the Session ID.
	ChannelID string `json:"channel_id"`

	// The topic prefix under which all Session events are published.
	TopicPrefix string `json:"topic_prefix"`
}

func NewEventPlaneConfig(domain, brokerAddress string, brokerPort int, channelID string) EventPlaneConfig {
	return EventPlaneConfig{
		BrokerAddress: brokerAddress,
		BrokerPort:    brokerPort,
		ChannelID:     channelID,
		TopicPrefix:   BuildTopicPrefix(domain, channelID),
	}
}

// EventTopic - the name of a subscription topic on the event plane. A full
// topic takes the form `{topic_prefix}/{event topic name}`. Notifications
// carry no payload; clients re-fetch state on receipt.
type EventTopic string

const (
	TopicGameDeleted          EventTopic = "GameDeleted"
	TopicGameEndedInStalemate EventTopic = "GameEndedInStalemate"
	TopicGameEndedInWin       EventTopic = "GameEndedInWin"
	TopicGameStarted          EventTopic = "GameStarted"
	TopicPlayerAddedToSession EventTopic = "PlayerAddedToSession"
	TopicPlayerReady          EventTopic = "PlayerReady"
	TopicSessionDeleted       EventTopic = "SessionDeleted"
	TopicTurnTaken            EventTopic = "TurnTaken"
)

// Build - constructs the full topic under the given Session topic prefix.
func (that EventTopic) Build(topicPrefix string) string {
	return fmt.Sprintf("%s/%s", topicPrefix, that)
}

// BuildTopicPrefix - constructs the topic prefix specific to a channel:
// `{domain}/Channels/{channelID}`.
func BuildTopicPrefix(domain, channelID string) string {
	return fmt.Sprintf("%s/Channels/%s", domain, channelID)
}

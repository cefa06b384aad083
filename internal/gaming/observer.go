package gaming

// StateChange - a change in a Gaming Session that observers are told about.
type StateChange string

const (
	// StateChangeGameStarted - the Game's roster is complete and play can begin.
	StateChangeGameStarted StateChange = "GameStarted"
	// StateChangeGameTurnTaken - a player made a move.
	StateChangeGameTurnTaken StateChange = "GameTurnTaken"
	// StateChangeGameDeleted - the session's Game was removed.
	StateChangeGameDeleted StateChange = "GameDeleted"
	// StateChangePlayerAddedToSession - a second player joined the session.
	StateChangePlayerAddedToSession StateChange = "PlayerAddedToSession"
	// StateChangePlayerReady - a player signaled readiness during game setup.
	StateChangePlayerReady StateChange = "PlayerReady"
	// StateChangeSessionDeleted - the session itself was removed.
	StateChangeSessionDeleted StateChange = "SessionDeleted"
)

// SessionObserver - a component notified of session and game state changes.
// Observers are invoked after the manager has released its lock, so they may
// call back into the manager. Notification is fire-and-forget: observer
// failures never roll back the state change that triggered them.
type SessionObserver interface {
	// SessionUpdated - called on every state change. The game argument is nil
	// for changes that concern the session alone.
	SessionUpdated(change StateChange, session *GamingSession, game *Game)

	// UniqueID - identifies the observer so it can be detached later.
	UniqueID() string
}

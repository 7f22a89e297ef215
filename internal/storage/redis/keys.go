package redis

import (
	"fmt"

	"github.com/mcoot/blockdrop/internal/model"
)

const keyPrefix = "blockdrop"

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// registeredPlayerKey returns the Redis key for a RegisteredPlayer
func registeredPlayerKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s:registered_player:%s", keyPrefix, playerID)
}

// usernameIndexKey returns the Redis key for the username -> player_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// gameKey returns the Redis key for a Game
func gameKey(id model.GameID) string {
	return fmt.Sprintf("%s:game:%s", keyPrefix, id)
}

// ownerGamesIndexKey returns the Redis key for the ZSET of an owner's game
// IDs, scored by creation time
func ownerGamesIndexKey(owner model.PlayerID) string {
	return fmt.Sprintf("%s:idx:owner_games:%s", keyPrefix, owner)
}

// presetsKey returns the Redis key for the HASH of preset name -> preset JSON
func presetsKey() string {
	return fmt.Sprintf("%s:presets", keyPrefix)
}

// presetOrderKey returns the Redis key for the LIST of preset names in load order
func presetOrderKey() string {
	return fmt.Sprintf("%s:presets:order", keyPrefix)
}

// Package impl holds the Firestore-backed repository implementations.
package impl

import (
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/repositories"
)

// Firestore collection names.
const (
	colServers        = "servers"
	colRooms          = "rooms"
	colMessages       = "messages"
	colMembers        = "members"
	colDMs            = "dms"
	colUsers          = "users"
	colMedia          = "media"
	colFriendRequests = "friendRequests"
	colServerInvites  = "serverInvites"
	colPosts          = "posts"
	colComments       = "comments"
	colCustomFeeds    = "customFeeds"
)

// orderField is the server-assigned ordering key shared by every
// paginated collection except threads and media, which carry their own.
const orderField = "createdAt"

// splitRoomScope parses a RoomScope key back into its path segments.
func splitRoomScope(scope string) (serverID, roomID string, err error) {
	parts := strings.SplitN(scope, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("malformed room scope %q", scope)
	}
	return parts[0], parts[1], nil
}

// wrapErr maps Firestore not-found codes onto the repository sentinel.
func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if status.Code(err) == codes.NotFound {
		return fmt.Errorf("%s: %w", op, repositories.ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func roomMessagesRef(client *firestore.Client, serverID, roomID string) *firestore.CollectionRef {
	return client.Collection(colServers).Doc(serverID).Collection(colRooms).Doc(roomID).Collection(colMessages)
}

package impl

import (
	"context"

	"cloud.google.com/go/firestore"

	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/models"
)

type ServerRepositoryImpl struct {
	client *firestore.Client
}

func NewServerRepository(client *firestore.Client) *ServerRepositoryImpl {
	return &ServerRepositoryImpl{client: client}
}

// Create writes the server and the owner's membership together so a
// server can never exist without its owner on the roster.
func (r *ServerRepositoryImpl) Create(ctx context.Context, srv *models.Server) (string, error) {
	ref := r.client.Collection(colServers).NewDoc()
	memberRef := ref.Collection(colMembers).Doc(srv.OwnerID)
	owner := &models.Membership{Role: models.RoleOwner}

	err := r.client.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		if err := tx.Create(ref, srv); err != nil {
			return err
		}
		return tx.Create(memberRef, owner)
	})
	if err != nil {
		return "", wrapErr("create server", err)
	}
	srv.ID = ref.ID
	return ref.ID, nil
}

func (r *ServerRepositoryImpl) Get(ctx context.Context, serverID string) (*models.Server, error) {
	doc, err := r.client.Collection(colServers).Doc(serverID).Get(ctx)
	if err != nil {
		return nil, wrapErr("get server", err)
	}
	var srv models.Server
	if err := doc.DataTo(&srv); err != nil {
		return nil, wrapErr("get server", err)
	}
	srv.ID = doc.Ref.ID
	return &srv, nil
}

func (r *ServerRepositoryImpl) Update(ctx context.Context, serverID string, fields map[string]any) error {
	updates := make([]firestore.Update, 0, len(fields))
	for path, value := range fields {
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}
	_, err := r.client.Collection(colServers).Doc(serverID).Update(ctx, updates)
	return wrapErr("update server", err)
}

func (r *ServerRepositoryImpl) CreateRoom(ctx context.Context, serverID string, room *models.Room) (string, error) {
	ref := r.client.Collection(colServers).Doc(serverID).Collection(colRooms).NewDoc()
	if _, err := ref.Create(ctx, room); err != nil {
		return "", wrapErr("create room", err)
	}
	room.ID = ref.ID
	return ref.ID, nil
}

func (r *ServerRepositoryImpl) GetRoom(ctx context.Context, serverID, roomID string) (*models.Room, error) {
	doc, err := r.client.Collection(colServers).Doc(serverID).Collection(colRooms).Doc(roomID).Get(ctx)
	if err != nil {
		return nil, wrapErr("get room", err)
	}
	var room models.Room
	if err := doc.DataTo(&room); err != nil {
		return nil, wrapErr("get room", err)
	}
	room.ID = doc.Ref.ID
	return &room, nil
}

func (r *ServerRepositoryImpl) ListRooms(ctx context.Context, serverID string) ([]models.Room, error) {
	docs := r.client.Collection(colServers).Doc(serverID).Collection(colRooms).
		OrderBy(orderField, firestore.Asc).
		Documents(ctx)
	rooms, err := decodeAll(docs, func(doc *firestore.DocumentSnapshot) (models.Room, error) {
		var room models.Room
		if err := doc.DataTo(&room); err != nil {
			return models.Room{}, err
		}
		room.ID = doc.Ref.ID
		return room, nil
	})
	if err != nil {
		return nil, wrapErr("list rooms", err)
	}
	return rooms, nil
}

func (r *ServerRepositoryImpl) Membership(ctx context.Context, serverID, userID string) (*models.Membership, error) {
	doc, err := r.client.Collection(colServers).Doc(serverID).Collection(colMembers).Doc(userID).Get(ctx)
	if err != nil {
		return nil, wrapErr("get membership", err)
	}
	member, err := decodeMembership(doc)
	if err != nil {
		return nil, wrapErr("get membership", err)
	}
	return &member, nil
}

func (r *ServerRepositoryImpl) AddMember(ctx context.Context, serverID string, member *models.Membership) error {
	_, err := r.client.Collection(colServers).Doc(serverID).Collection(colMembers).
		Doc(member.UserID).Set(ctx, member)
	return wrapErr("add member", err)
}

func (r *ServerRepositoryImpl) RemoveMember(ctx context.Context, serverID, userID string) error {
	_, err := r.client.Collection(colServers).Doc(serverID).Collection(colMembers).Doc(userID).Delete(ctx)
	return wrapErr("remove member", err)
}

func (r *ServerRepositoryImpl) ListMembers(ctx context.Context, serverID string) ([]models.Membership, error) {
	docs := r.client.Collection(colServers).Doc(serverID).Collection(colMembers).Documents(ctx)
	members, err := decodeAll(docs, decodeMembership)
	if err != nil {
		return nil, wrapErr("list members", err)
	}
	return members, nil
}

func decodeMembership(doc *firestore.DocumentSnapshot) (models.Membership, error) {
	var member models.Membership
	if err := doc.DataTo(&member); err != nil {
		return models.Membership{}, err
	}
	member.UserID = doc.Ref.ID
	return member, nil
}

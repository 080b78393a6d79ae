package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"safetyconnect_backend/internal/models"
	"safetyconnect_backend/internal/services/dto"
	"safetyconnect_backend/pkg/apperrors"
)

type recordingBroadcaster struct {
	events []interface{}
}

func (b *recordingBroadcaster) BroadcastToRoom(roomID string, event interface{}) {
	b.events = append(b.events, event)
}

func chatFixture(t *testing.T) (*fakeRepos, *recordingBroadcaster, ChatService, string) {
	t.Helper()
	repos := newFakeRepos()
	repos.partners.partners = []models.PartnerProfile{
		approvedPartner("p1", "p1@example.com", "An toàn điện"),
	}

	room := models.ChatRoom{
		RequestID:   "req-1",
		PartnerID:   "p1",
		ClientID:    models.AdminChatID,
		ClientName:  "Công ty TNHH ABC",
		PartnerName: "Trung tâm ATLD p1",
	}
	room.ID = "room-1"
	repos.chats.rooms = []models.ChatRoom{room}

	broadcaster := &recordingBroadcaster{}
	svc := NewChatService(repos.factory(), nil, broadcaster)
	return repos, broadcaster, svc, room.ID
}

func TestSendMessageBumpsCounterpartAndBroadcasts(t *testing.T) {
	repos, broadcaster, svc, roomID := chatFixture(t)

	msg, err := svc.SendMessage(context.Background(), nil, roomID, "p1", models.UserRolePartner, &dto.SendMessageRequest{
		Message: "Chúng tôi có thể hỗ trợ khóa này.",
	})
	require.NoError(t, err)

	assert.Equal(t, "Trung tâm ATLD p1", msg.SenderName)
	assert.Equal(t, 1, repos.chats.touched)
	require.Len(t, broadcaster.events, 1)
	assert.Equal(t, msg, broadcaster.events[0])
}

func TestSendMessageRequiresContent(t *testing.T) {
	_, _, svc, roomID := chatFixture(t)

	_, err := svc.SendMessage(context.Background(), nil, roomID, "p1", models.UserRolePartner, &dto.SendMessageRequest{
		Message: "   ",
	})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)
}

func TestSendMessageDeniesForeignPartner(t *testing.T) {
	_, _, svc, roomID := chatFixture(t)

	_, err := svc.SendMessage(context.Background(), nil, roomID, "p2", models.UserRolePartner, &dto.SendMessageRequest{
		Message: "hello",
	})
	assert.ErrorIs(t, err, apperrors.ErrRoomAccessDenied)
}

func TestCanAccessRoomMatchesRoomOwnership(t *testing.T) {
	_, _, svc, roomID := chatFixture(t)
	ctx := context.Background()

	assert.True(t, svc.CanAccessRoom(ctx, nil, roomID, "p1", models.UserRolePartner))
	assert.True(t, svc.CanAccessRoom(ctx, nil, roomID, "admin", models.UserRoleAdmin))
	assert.False(t, svc.CanAccessRoom(ctx, nil, roomID, "p2", models.UserRolePartner))
	assert.False(t, svc.CanAccessRoom(ctx, nil, "room-404", "p1", models.UserRolePartner))
}

func TestAdminSeesEveryRoom(t *testing.T) {
	_, _, svc, roomID := chatFixture(t)

	msgs, err := svc.ListMessages(context.Background(), nil, roomID, "admin", models.UserRoleAdmin)
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestMarkReadResetsOwnSide(t *testing.T) {
	repos, _, svc, roomID := chatFixture(t)

	require.NoError(t, svc.MarkRead(context.Background(), nil, roomID, "p1", models.UserRolePartner))
	require.NoError(t, svc.MarkRead(context.Background(), nil, roomID, "admin", models.UserRoleAdmin))

	assert.Equal(t, []bool{true, false}, repos.chats.resets)
}

func TestAttachmentMessagePreview(t *testing.T) {
	repos, _, svc, roomID := chatFixture(t)

	msg, err := svc.SendMessage(context.Background(), nil, roomID, "p1", models.UserRolePartner, &dto.SendMessageRequest{
		Attachment: &dto.AttachmentInput{
			URL:  "https://files.safetyconnect.vn/chat/room-1/a.pdf",
			Name: "giao-trinh.pdf",
			Type: "pdf",
			Size: 1024,
		},
	})
	require.NoError(t, err)

	att := msg.GetAttachment()
	require.NotNil(t, att)
	assert.Equal(t, "giao-trinh.pdf", att.Name)
	assert.Len(t, repos.chats.messages, 1)
}

func TestAttachmentCategory(t *testing.T) {
	assert.Equal(t, "image", attachmentCategory("image/png"))
	assert.Equal(t, "pdf", attachmentCategory("application/pdf"))
	assert.Equal(t, "document", attachmentCategory("application/msword"))
}

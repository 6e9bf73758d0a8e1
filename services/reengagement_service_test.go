package services

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"barberledger-backend/logger"
	"barberledger-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeSender struct {
	mu    sync.Mutex
	sent  map[string]string
	fails map[string]bool
}

func newFakeSender() *fakeSender {
	return &fakeSender{sent: map[string]string{}, fails: map[string]bool{}}
}

func (f *fakeSender) Send(to, body string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fails[to] {
		return "", errors.New("provider unavailable")
	}
	f.sent[to] = body
	return "SM" + to, nil
}

func newTestReengagement(t *testing.T, sender MessageSender, now time.Time) (*ReengagementService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	clock := func() time.Time { return now }
	settings := NewSettingsService(db)
	inactivity := NewInactivityService(NewClientStore(db), settings, clock)
	svc := NewReengagementService(db, inactivity, settings, sender, logger.Nop(), newTestMetrics())
	svc.now = clock
	return svc, db
}

func TestReengagement_TargetsRenderTemplate(t *testing.T) {
	now := at(2024, time.June, 30, 12, 0)
	svc, db := newTestReengagement(t, nil, now)
	owner := uuid.New()
	clients := NewClientStore(db)

	_, err := clients.Create(t.Context(), owner, ClientInput{Name: "Carlos", Phone: strPtr("(11) 98765-4321")})
	require.NoError(t, err)
	_, err = clients.Create(t.Context(), owner, ClientInput{Name: "Sem Telefone"})
	require.NoError(t, err)
	_, err = svc.settings.Upsert(t.Context(), owner, SettingsUpdate{
		ShopName:             strPtr("Barbearia Central"),
		ReengagementTemplate: strPtr("Oi [NOME_CLIENTE], saudades da [NOME_BARBEARIA]!"),
	})
	require.NoError(t, err)

	targets, err := svc.Targets(t.Context(), owner)
	require.NoError(t, err)
	require.Len(t, targets, 2)

	byName := map[string]ReengagementTarget{}
	for _, target := range targets {
		byName[target.Client.Name] = target
	}
	carlos := byName["Carlos"]
	assert.Equal(t, "Oi Carlos, saudades da Barbearia Central!", carlos.Message)
	assert.True(t, strings.HasPrefix(carlos.Link, "https://wa.me/"), carlos.Link)
	assert.Empty(t, byName["Sem Telefone"].Link)
}

func TestReengagement_DispatchCountsAndLogs(t *testing.T) {
	now := at(2024, time.June, 30, 12, 0)
	sender := newFakeSender()
	svc, db := newTestReengagement(t, sender, now)
	owner := uuid.New()
	clients := NewClientStore(db)

	ok, err := clients.Create(t.Context(), owner, ClientInput{Name: "Ana", Phone: strPtr("11911112222")})
	require.NoError(t, err)
	broken, err := clients.Create(t.Context(), owner, ClientInput{Name: "Bia", Phone: strPtr("11933334444")})
	require.NoError(t, err)
	_, err = clients.Create(t.Context(), owner, ClientInput{Name: "Sem Telefone"})
	require.NoError(t, err)
	sender.fails[*broken.Phone] = true

	summary, err := svc.Dispatch(t.Context(), owner)
	require.NoError(t, err)
	assert.Equal(t, DispatchSummary{Sent: 1, Failed: 1, Skipped: 1}, summary)
	assert.Contains(t, sender.sent[*ok.Phone], "Ana")
	assert.Contains(t, sender.sent[*ok.Phone], FallbackShopName)

	var logs []models.ReengagementLog
	require.NoError(t, db.Order("status DESC").Find(&logs).Error)
	require.Len(t, logs, 2)
	assert.Equal(t, "sent", logs[0].Status)
	assert.Equal(t, ok.ID, logs[0].ClientID)
	assert.Equal(t, "failed", logs[1].Status)
	assert.Equal(t, "provider unavailable", logs[1].ErrorMessage)

	// A second run within the window skips the client already messaged and
	// retries the failed one.
	delete(sender.fails, *broken.Phone)
	summary, err = svc.Dispatch(t.Context(), owner)
	require.NoError(t, err)
	assert.Equal(t, DispatchSummary{Sent: 1, Failed: 0, Skipped: 2}, summary)
}

func TestReengagement_DispatchWithoutSender(t *testing.T) {
	svc, _ := newTestReengagement(t, nil, time.Now())
	_, err := svc.Dispatch(t.Context(), uuid.New())
	assert.Error(t, err)
}

func TestReengagement_DispatchAllCoversEveryOperator(t *testing.T) {
	now := at(2024, time.June, 30, 12, 0)
	sender := newFakeSender()
	svc, db := newTestReengagement(t, sender, now)
	clients := NewClientStore(db)

	for i, phone := range []string{"11900000001", "11900000002"} {
		user := models.User{Name: "Operador", Email: uuid.NewString() + "@example.com", Password: "x"}
		require.NoError(t, db.Create(&user).Error)
		_, err := clients.Create(t.Context(), user.ID, ClientInput{Name: []string{"Ana", "Bia"}[i], Phone: strPtr(phone)})
		require.NoError(t, err)
	}

	svc.DispatchAll(t.Context())
	assert.Len(t, sender.sent, 2)
}

// services/reengagement_service.go
package services

import (
	"context"
	"fmt"
	"time"

	"barberledger-backend/logger"
	"barberledger-backend/metrics"
	"barberledger-backend/models"
	"barberledger-backend/utils"

	"github.com/google/uuid"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

const ChannelWhatsApp = "whatsapp"

// MessageSender delivers one message and returns the provider's message id.
type MessageSender interface {
	Send(to, body string) (string, error)
}

// TwilioSender sends WhatsApp messages through the Twilio REST API.
type TwilioSender struct {
	client *twilio.RestClient
	from   string
}

func NewTwilioSender(accountSID, authToken, whatsAppNumber string) *TwilioSender {
	return &TwilioSender{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSID,
			Password: authToken,
		}),
		from: utils.WhatsAppAddress(whatsAppNumber),
	}
}

func (s *TwilioSender) Send(to, body string) (string, error) {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(utils.WhatsAppAddress(to))
	params.SetFrom(s.from)
	params.SetBody(body)

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		return "", err
	}
	if resp.Sid == nil {
		return "", nil
	}
	return *resp.Sid, nil
}

// ReengagementTarget is an inactive client with the message to send them.
type ReengagementTarget struct {
	Client  models.Client `json:"client"`
	Message string        `json:"message"`
	Link    string        `json:"whatsappLink,omitempty"`
}

// DispatchSummary counts the outcome of one dispatch run.
type DispatchSummary struct {
	Sent    int
	Failed  int
	Skipped int
}

type ReengagementService struct {
	db         *gorm.DB
	inactivity *InactivityService
	settings   *SettingsService
	sender     MessageSender
	log        *logger.Logger
	metrics    *metrics.Metrics
	now        func() time.Time
}

// NewReengagementService wires the dispatcher. sender may be nil, in which
// case only Targets is usable.
func NewReengagementService(db *gorm.DB, inactivity *InactivityService, settings *SettingsService, sender MessageSender, log *logger.Logger, m *metrics.Metrics) *ReengagementService {
	return &ReengagementService{
		db:         db,
		inactivity: inactivity,
		settings:   settings,
		sender:     sender,
		log:        log,
		metrics:    m,
		now:        time.Now,
	}
}

// Targets renders the operator's template for each inactive client.
// Clients without a phone get a message but no link.
func (s *ReengagementService) Targets(ctx context.Context, ownerID uuid.UUID) ([]ReengagementTarget, error) {
	settings, err := s.settings.Get(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	clients, err := s.inactivity.FindInactive(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	shopName := ""
	if settings.ShopName != nil {
		shopName = *settings.ShopName
	}
	targets := make([]ReengagementTarget, 0, len(clients))
	for _, c := range clients {
		target := ReengagementTarget{
			Client:  c,
			Message: RenderMessage(settings.ReengagementTemplate, c.Name, shopName),
		}
		if c.Phone != nil && *c.Phone != "" {
			target.Link = utils.WhatsAppLink(*c.Phone, target.Message)
		}
		targets = append(targets, target)
	}
	return targets, nil
}

// DispatchAll runs Dispatch for every operator. One operator's failure does
// not stop the others.
func (s *ReengagementService) DispatchAll(ctx context.Context) {
	s.log.Info("starting reengagement dispatch")

	var ownerIDs []uuid.UUID
	if err := s.db.WithContext(ctx).Model(&models.User{}).Pluck("id", &ownerIDs).Error; err != nil {
		s.log.Error("failed to fetch operators", "error", err)
		return
	}

	for _, ownerID := range ownerIDs {
		log := s.log.With("operatorId", ownerID)
		summary, err := s.Dispatch(ctx, ownerID)
		if err != nil {
			log.Error("reengagement dispatch failed", "error", err)
			continue
		}
		log.Info("reengagement dispatch done",
			"sent", summary.Sent, "failed", summary.Failed, "skipped", summary.Skipped)
	}
}

// Dispatch sends the reengagement message to each inactive client with a
// phone. A client already messaged within the inactivity window is skipped.
func (s *ReengagementService) Dispatch(ctx context.Context, ownerID uuid.UUID) (DispatchSummary, error) {
	var summary DispatchSummary
	if s.sender == nil {
		return summary, fmt.Errorf("no message sender configured")
	}

	settings, err := s.settings.Get(ctx, ownerID)
	if err != nil {
		return summary, err
	}
	targets, err := s.Targets(ctx, ownerID)
	if err != nil {
		return summary, err
	}
	since := InactivityThreshold(s.now(), settings.InactivityDays)

	for _, target := range targets {
		client := target.Client
		if client.Phone == nil || *client.Phone == "" {
			summary.Skipped++
			continue
		}
		recent, err := s.sentSince(ctx, ownerID, client.ID, since)
		if err != nil {
			return summary, err
		}
		if recent {
			summary.Skipped++
			continue
		}

		entry := models.ReengagementLog{
			OwnerID:  ownerID,
			ClientID: client.ID,
			Message:  target.Message,
			Channel:  ChannelWhatsApp,
			Status:   "sent",
			SentAt:   s.now().UTC(),
		}
		sid, err := s.sender.Send(*client.Phone, target.Message)
		if err != nil {
			s.log.Warn("failed to send reengagement message", "clientId", client.ID, "error", err)
			entry.Status = "failed"
			entry.ErrorMessage = err.Error()
			summary.Failed++
		} else {
			s.log.Debug("reengagement message sent", "clientId", client.ID, "sid", sid)
			summary.Sent++
		}
		s.metrics.ReengagementSent.WithLabelValues(entry.Status).Inc()

		if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
			s.log.Error("failed to log reengagement message", "clientId", client.ID, "error", err)
		}
	}
	return summary, nil
}

func (s *ReengagementService) sentSince(ctx context.Context, ownerID, clientID uuid.UUID, since time.Time) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.ReengagementLog{}).
		Where("owner_id = ? AND client_id = ? AND status = ? AND sent_at >= ?", ownerID, clientID, "sent", since.UTC()).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check reengagement log: %w", err)
	}
	return count > 0, nil
}

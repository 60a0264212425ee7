package notification

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"recruit/internal/content"
	"recruit/internal/messaging"
	"recruit/internal/messaging/actions"
	messagingmocks "recruit/internal/messaging/mocks"
	moderation "recruit/internal/moderation/models"
	"recruit/internal/notification/metrics"
	submission "recruit/internal/submission/models"
	id "recruit/pkg/domain"
)

const moderationChat id.ChatID = -100500

var decidedAt = time.Date(2024, 6, 15, 12, 5, 0, 0, time.UTC)

type DispatcherSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	gateway    *messagingmocks.MockGateway
	content    *content.Content
	metrics    *metrics.Metrics
	dispatcher *Dispatcher
	ctx        context.Context
}

func TestDispatcherSuite(t *testing.T) {
	suite.Run(t, new(DispatcherSuite))
}

func (s *DispatcherSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.gateway = messagingmocks.NewMockGateway(s.ctrl)
	c, err := content.Default()
	s.Require().NoError(err)
	s.content = c
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.dispatcher, err = New(s.gateway, moderationChat, c,
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithMetrics(s.metrics),
	)
	s.Require().NoError(err)
	s.ctx = context.Background()
}

func (s *DispatcherSuite) TearDownTest() {
	s.ctrl.Finish()
}

func annLee(category string) *submission.Submission {
	return &submission.Submission{
		ID:              12,
		ApplicantID:     42,
		ApplicantHandle: "ann_lee",
		Fields: submission.Fields{
			Name:      "Ann Lee",
			Age:       "20",
			BirthDate: "01.01.2000",
			City:      "Kyiv",
			Nickname:  "annL",
			GameID:    "G123",
			Category:  category,
		},
		Status: submission.StatusPending,
	}
}

func outcome(sub *submission.Submission, action moderation.Action) *moderation.Outcome {
	sub.Status = action.TargetStatus()
	mod := submission.Moderator{ID: 7, Display: "@mod_kate"}
	sub.DecidedBy = &mod
	sub.DecidedAt = &decidedAt
	return &moderation.Outcome{Submission: sub, Action: action, DecidedBy: mod, DecidedAt: decidedAt}
}

func (s *DispatcherSuite) TestNew() {
	s.Run("requires a gateway", func() {
		_, err := New(nil, moderationChat, s.content)
		s.Require().Error(err)
	})
	s.Run("requires a moderation chat", func() {
		_, err := New(s.gateway, 0, s.content)
		s.Require().Error(err)
	})
	s.Run("requires content", func() {
		_, err := New(s.gateway, moderationChat, nil)
		s.Require().Error(err)
	})
}

func (s *DispatcherSuite) TestNotifyModerators() {
	sub := annLee("Academy")
	s.gateway.EXPECT().SendTextWithOptions(gomock.Any(), moderationChat, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ id.ChatID, text string, options []messaging.Option) (messaging.MessageRef, error) {
			s.Contains(text, "НОВА АНКЕТА")
			s.Contains(text, "Ann Lee")
			s.Contains(text, "01.01.2000")
			s.Contains(text, "G123")
			s.Contains(text, "🎓 Academy")
			s.Contains(text, "Telegram: @ann_lee")
			s.Require().Len(options, 2)
			s.Equal(actions.Accept(12), options[0].Token)
			s.Equal(actions.Reject(12), options[1].Token)
			return messaging.MessageRef{ChatID: moderationChat, MessageID: 3}, nil
		})

	s.Require().NoError(s.dispatcher.NotifyModerators(s.ctx, sub))
	s.Equal(1.0, testutil.ToFloat64(s.metrics.Deliveries.WithLabelValues(metrics.StepModeratorSummary)))
}

func (s *DispatcherSuite) TestSummaryWithoutHandle() {
	sub := annLee("Academy")
	sub.ApplicantHandle = ""
	s.Contains(s.dispatcher.Summary(sub), "Telegram: "+s.content.Texts.NoHandle)
}

func (s *DispatcherSuite) TestNotifyModeratorsFailure() {
	s.gateway.EXPECT().SendTextWithOptions(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(messaging.MessageRef{}, errors.New("chat not found"))

	err := s.dispatcher.NotifyModerators(s.ctx, annLee("Academy"))
	s.Require().Error(err)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.DeliveryFailures.WithLabelValues(metrics.StepModeratorSummary)))
}

func (s *DispatcherSuite) TestAcceptedSequence() {
	out := outcome(annLee("Academy"), moderation.ActionAccept)
	ref := messaging.MessageRef{ChatID: moderationChat, MessageID: 3}
	applicantChat := id.ChatID(42)

	gomock.InOrder(
		s.gateway.EXPECT().SendText(gomock.Any(), applicantChat, s.content.Texts.Accepted).
			Return(messaging.MessageRef{}, nil),
		s.gateway.EXPECT().SendAttachment(gomock.Any(), applicantChat, messaging.AssetRef{
			Key: "academy/welcome.jpg", Kind: messaging.AttachmentPhoto, Caption: "Ласкаво просимо до Academy",
		}).Return(nil),
		s.gateway.EXPECT().SendText(gomock.Any(), applicantChat, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ id.ChatID, text string) (messaging.MessageRef, error) {
				s.Contains(text, "https://t.me/+clan_academy")
				s.Contains(text, "https://t.me/+clan_general")
				s.Contains(text, "annL")
				s.Contains(text, "G123")
				return messaging.MessageRef{}, nil
			}),
		s.gateway.EXPECT().EditMessage(gomock.Any(), ref, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ messaging.MessageRef, text string) error {
				s.True(strings.HasPrefix(text, s.dispatcher.Summary(out.Submission)))
				s.Contains(text, s.content.Texts.DecisionAccepted)
				s.Contains(text, "@mod_kate")
				s.Contains(text, "15.06.2024 12:05")
				return nil
			}),
	)

	s.Require().NoError(s.dispatcher.NotifyApplicant(s.ctx, out, ref))
}

func (s *DispatcherSuite) TestRejectedSequence() {
	out := outcome(annLee("Academy"), moderation.ActionReject)
	ref := messaging.MessageRef{ChatID: moderationChat, MessageID: 3}

	gomock.InOrder(
		s.gateway.EXPECT().SendText(gomock.Any(), id.ChatID(42), s.content.Texts.Rejected).
			Return(messaging.MessageRef{}, nil),
		s.gateway.EXPECT().EditMessage(gomock.Any(), ref, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ messaging.MessageRef, text string) error {
				s.Contains(text, s.content.Texts.DecisionRejected)
				return nil
			}),
	)

	s.Require().NoError(s.dispatcher.NotifyApplicant(s.ctx, out, ref))
}

func (s *DispatcherSuite) TestAttachmentFailureDoesNotBlockAmendment() {
	out := outcome(annLee("Main"), moderation.ActionAccept)
	ref := messaging.MessageRef{ChatID: moderationChat, MessageID: 3}

	s.gateway.EXPECT().SendText(gomock.Any(), gomock.Any(), gomock.Any()).Return(messaging.MessageRef{}, nil).Times(2)
	s.gateway.EXPECT().SendAttachment(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("file too big"))
	s.gateway.EXPECT().EditMessage(gomock.Any(), ref, gomock.Any()).Return(nil)

	err := s.dispatcher.NotifyApplicant(s.ctx, out, ref)
	s.Require().Error(err)
	s.Contains(err.Error(), "main/rules.pdf")
	s.Equal(1.0, testutil.ToFloat64(s.metrics.DeliveryFailures.WithLabelValues(metrics.StepAttachment)))
	s.Equal(1.0, testutil.ToFloat64(s.metrics.Deliveries.WithLabelValues(metrics.StepAmendment)))
}

func (s *DispatcherSuite) TestUnmappedCategoryUsesDefaultLinks() {
	out := outcome(annLee("Veterans"), moderation.ActionAccept)

	s.gateway.EXPECT().SendText(gomock.Any(), gomock.Any(), s.content.Texts.Accepted).Return(messaging.MessageRef{}, nil)
	s.gateway.EXPECT().SendText(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ id.ChatID, text string) (messaging.MessageRef, error) {
			s.Contains(text, s.content.DefaultLinks.Category)
			return messaging.MessageRef{}, nil
		})

	s.Require().NoError(s.dispatcher.NotifyApplicant(s.ctx, out, messaging.MessageRef{}))
}

func (s *DispatcherSuite) TestApplicantUnreachableStillAmends() {
	out := outcome(annLee("Creators"), moderation.ActionAccept)
	ref := messaging.MessageRef{ChatID: moderationChat, MessageID: 9}

	s.gateway.EXPECT().SendText(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(messaging.MessageRef{}, errors.New("bot was blocked by the user")).Times(2)
	s.gateway.EXPECT().EditMessage(gomock.Any(), ref, gomock.Any()).Return(nil)

	err := s.dispatcher.NotifyApplicant(s.ctx, out, ref)
	s.Require().Error(err)
	s.Equal(2.0, testutil.ToFloat64(s.metrics.DeliveryFailures.WithLabelValues(metrics.StepVerdict))+
		testutil.ToFloat64(s.metrics.DeliveryFailures.WithLabelValues(metrics.StepInstructions)))
}

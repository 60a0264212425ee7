package bot

//go:generate mockgen -source=dispatcher.go -destination=mocks/mocks.go -package=mocks Conversation,Moderation,ApplicantNotifier

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"recruit/internal/bot/mocks"
	"recruit/internal/content"
	convservice "recruit/internal/conversation/service"
	"recruit/internal/messaging"
	"recruit/internal/messaging/actions"
	messagingmocks "recruit/internal/messaging/mocks"
	moderation "recruit/internal/moderation/models"
	modservice "recruit/internal/moderation/service"
	"recruit/internal/platform/logger"
	"recruit/internal/platform/metrics"
	submission "recruit/internal/submission/models"
	id "recruit/pkg/domain"
	dErrors "recruit/pkg/domain-errors"
	"recruit/pkg/requestcontext"
)

const modChat id.ChatID = -100500

var (
	applicant = messaging.Sender{UserID: 42, Handle: "ann_lee"}
	moderator = messaging.Sender{UserID: 7, Handle: "mod_kate"}
)

type DispatcherSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	conversation *mocks.MockConversation
	moderation   *mocks.MockModeration
	notifier     *mocks.MockApplicantNotifier
	gateway      *messagingmocks.MockGateway
	metrics      *metrics.Metrics
	texts        content.Texts
	dispatcher   *Dispatcher
	ctx          context.Context
}

func TestDispatcherSuite(t *testing.T) {
	suite.Run(t, new(DispatcherSuite))
}

func (s *DispatcherSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.conversation = mocks.NewMockConversation(s.ctrl)
	s.moderation = mocks.NewMockModeration(s.ctrl)
	s.notifier = mocks.NewMockApplicantNotifier(s.ctrl)
	s.gateway = messagingmocks.NewMockGateway(s.ctrl)
	s.metrics = metrics.New()
	c, err := content.Default()
	s.Require().NoError(err)
	s.texts = c.Texts
	s.dispatcher, err = New(s.conversation, s.moderation, s.notifier, s.gateway, s.texts, modChat,
		WithLogger(logger.Discard()),
		WithMetrics(s.metrics),
	)
	s.Require().NoError(err)
	s.ctx = context.Background()
}

func (s *DispatcherSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *DispatcherSuite) handle(event messaging.Event) {
	s.dispatcher.Handle(s.ctx, event)
	s.dispatcher.Wait()
}

func (s *DispatcherSuite) TestNew() {
	_, err := New(nil, s.moderation, s.notifier, s.gateway, s.texts, modChat)
	s.Require().Error(err)
	_, err = New(s.conversation, s.moderation, s.notifier, s.gateway, s.texts, 0)
	s.Require().Error(err)
}

func (s *DispatcherSuite) TestStartSendsGreeting() {
	s.gateway.EXPECT().SendText(gomock.Any(), id.ChatID(42), s.texts.Greeting+"\n\n"+s.texts.Help).
		Return(messaging.MessageRef{}, nil)
	s.handle(messaging.CommandEvent{ChatID: 42, From: applicant, Command: "start"})
	s.Equal(1.0, testutil.ToFloat64(s.metrics.UpdatesTotal.WithLabelValues(kindCommand)))
}

func (s *DispatcherSuite) TestFormStartsConversation() {
	s.conversation.EXPECT().Start(gomock.Any(), applicant).
		DoAndReturn(func(ctx context.Context, _ messaging.Sender) error {
			s.NotEmpty(requestcontext.RequestID(ctx))
			s.Equal(applicant.UserID, requestcontext.Actor(ctx))
			return nil
		})
	s.handle(messaging.CommandEvent{ChatID: 42, From: applicant, Command: "form"})
}

func (s *DispatcherSuite) TestQueuedEventsSurviveCancellation() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s.conversation.EXPECT().Start(gomock.Any(), applicant).
		DoAndReturn(func(ctx context.Context, _ messaging.Sender) error {
			s.NoError(ctx.Err())
			_, hasDeadline := ctx.Deadline()
			s.True(hasDeadline)
			return nil
		})
	s.conversation.EXPECT().Submit(gomock.Any(), applicant, "Ann Lee").
		DoAndReturn(func(ctx context.Context, _ messaging.Sender, _ string) (convservice.Result, error) {
			s.NoError(ctx.Err())
			return convservice.Result{}, nil
		})

	s.dispatcher.Handle(ctx, messaging.CommandEvent{ChatID: 42, From: applicant, Command: "form"})
	s.dispatcher.Handle(ctx, messaging.TextEvent{ChatID: 42, From: applicant, Text: "Ann Lee"})
	s.dispatcher.Wait()
}

func (s *DispatcherSuite) TestFormInGroupIsIgnored() {
	s.handle(messaging.CommandEvent{ChatID: modChat, From: applicant, Command: "form"})
}

func (s *DispatcherSuite) TestCancel() {
	s.conversation.EXPECT().Cancel(gomock.Any(), applicant).Return(nil)
	s.handle(messaging.CommandEvent{ChatID: 42, From: applicant, Command: "cancel"})
}

func (s *DispatcherSuite) TestUnknownCommandShowsHelp() {
	s.gateway.EXPECT().SendText(gomock.Any(), id.ChatID(42), s.texts.Help).Return(messaging.MessageRef{}, nil)
	s.handle(messaging.CommandEvent{ChatID: 42, From: applicant, Command: "dance"})
}

func (s *DispatcherSuite) TestStats() {
	s.Run("moderation chat gets counts", func() {
		s.moderation.EXPECT().Stats(gomock.Any()).Return(submission.Counts{Total: 5, Accepted: 2, Rejected: 1, Pending: 2}, nil)
		s.gateway.EXPECT().SendText(gomock.Any(), modChat, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ id.ChatID, text string) (messaging.MessageRef, error) {
				s.Contains(text, "Всього: 5")
				s.Contains(text, "Прийнято: 2")
				s.Contains(text, "Відхилено: 1")
				s.Contains(text, "Очікують: 2")
				return messaging.MessageRef{}, nil
			})
		s.handle(messaging.CommandEvent{ChatID: modChat, From: moderator, Command: "stats"})
	})

	s.Run("other chats are refused", func() {
		s.gateway.EXPECT().SendText(gomock.Any(), id.ChatID(42), s.texts.StatsForbidden).Return(messaging.MessageRef{}, nil)
		s.handle(messaging.CommandEvent{ChatID: 42, From: applicant, Command: "stats"})
	})

	s.Run("store failure", func() {
		s.moderation.EXPECT().Stats(gomock.Any()).Return(submission.Counts{}, dErrors.New(dErrors.CodeInternal, "boom"))
		s.gateway.EXPECT().SendText(gomock.Any(), modChat, s.texts.DecisionRetry).Return(messaging.MessageRef{}, nil)
		s.handle(messaging.CommandEvent{ChatID: modChat, From: moderator, Command: "stats"})
	})
}

func (s *DispatcherSuite) TestTextGoesToConversation() {
	s.conversation.EXPECT().Submit(gomock.Any(), applicant, "Ann Lee").Return(convservice.Result{}, nil)
	s.handle(messaging.TextEvent{ChatID: 42, From: applicant, Text: "Ann Lee"})
}

func (s *DispatcherSuite) TestGroupTextIsIgnored() {
	s.handle(messaging.TextEvent{ChatID: modChat, From: moderator, Text: "looks good"})
}

func (s *DispatcherSuite) TestCategorySelection() {
	gomock.InOrder(
		s.gateway.EXPECT().AnswerAction(gomock.Any(), "cb-1", "", false).Return(nil),
		s.conversation.EXPECT().SelectCategory(gomock.Any(), applicant, "Academy").Return(convservice.Result{}, nil),
	)
	s.handle(messaging.ActionEvent{ActionRef: "cb-1", ChatID: 42, From: applicant, Token: actions.SelectCategory("Academy")})
}

func (s *DispatcherSuite) TestMalformedTokenIsAcknowledged() {
	s.gateway.EXPECT().AnswerAction(gomock.Any(), "cb-1", "", false).Return(nil)
	s.handle(messaging.ActionEvent{ActionRef: "cb-1", ChatID: modChat, From: moderator, RawToken: "accept:x", TokenErr: errors.New("bad")})
}

func (s *DispatcherSuite) decisionEvent(token actions.Token) messaging.ActionEvent {
	return messaging.ActionEvent{
		ActionRef: "cb-9",
		ChatID:    modChat,
		Message:   messaging.MessageRef{ChatID: modChat, MessageID: 3},
		From:      moderator,
		Token:     token,
	}
}

func (s *DispatcherSuite) TestAcceptDecision() {
	outcome := &moderation.Outcome{
		Submission: &submission.Submission{ID: 12, Status: submission.StatusAccepted},
		Action:     moderation.ActionAccept,
	}
	gomock.InOrder(
		s.moderation.EXPECT().Decide(gomock.Any(), id.SubmissionID(12), moderation.ActionAccept,
			submission.Moderator{ID: 7, Display: "@mod_kate"}, gomock.Any()).Return(outcome, nil),
		s.gateway.EXPECT().AnswerAction(gomock.Any(), "cb-9", s.texts.DecisionAccepted, false).Return(nil),
		s.notifier.EXPECT().NotifyApplicant(gomock.Any(), outcome, messaging.MessageRef{ChatID: modChat, MessageID: 3}).Return(nil),
	)
	s.handle(s.decisionEvent(actions.Accept(12)))
}

func (s *DispatcherSuite) TestDecisionErrors() {
	tests := []struct {
		name string
		err  error
		text string
	}{
		{name: "unknown submission", err: modservice.ErrSubmissionNotFound, text: s.texts.NotFound},
		{name: "already decided", err: modservice.ErrAlreadyDecided, text: s.texts.AlreadyDecided},
		{name: "storage fault", err: dErrors.New(dErrors.CodeInternal, "db down"), text: s.texts.DecisionRetry},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.moderation.EXPECT().Decide(gomock.Any(), id.SubmissionID(99), moderation.ActionReject, gomock.Any(), gomock.Any()).
				Return(nil, tt.err)
			s.gateway.EXPECT().AnswerAction(gomock.Any(), "cb-9", tt.text, true).Return(nil)
			s.handle(s.decisionEvent(actions.Reject(99)))
		})
	}
}

func (s *DispatcherSuite) TestDecisionOutsideModerationChat() {
	s.gateway.EXPECT().AnswerAction(gomock.Any(), "cb-9", s.texts.ActionForbidden, true).Return(nil)
	event := s.decisionEvent(actions.Accept(12))
	event.ChatID = 42
	s.handle(event)
}

func (s *DispatcherSuite) TestPanicIsRecovered() {
	s.conversation.EXPECT().Submit(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, messaging.Sender, string) (convservice.Result, error) {
			panic("boom")
		})
	s.handle(messaging.TextEvent{ChatID: 42, From: applicant, Text: "x"})
	s.Equal(1.0, testutil.ToFloat64(s.metrics.HandlerPanics))
}

func (s *DispatcherSuite) TestSameChatIsSerialized() {
	release := make(chan struct{})
	var order []string
	gomock.InOrder(
		s.conversation.EXPECT().Submit(gomock.Any(), applicant, "first").
			DoAndReturn(func(context.Context, messaging.Sender, string) (convservice.Result, error) {
				<-release
				order = append(order, "first")
				return convservice.Result{}, nil
			}),
		s.conversation.EXPECT().Submit(gomock.Any(), applicant, "second").
			DoAndReturn(func(context.Context, messaging.Sender, string) (convservice.Result, error) {
				order = append(order, "second")
				return convservice.Result{}, nil
			}),
	)
	s.dispatcher.Handle(s.ctx, messaging.TextEvent{ChatID: 42, From: applicant, Text: "first"})
	s.dispatcher.Handle(s.ctx, messaging.TextEvent{ChatID: 42, From: applicant, Text: "second"})
	time.Sleep(10 * time.Millisecond)
	close(release)
	s.dispatcher.Wait()
	s.Equal([]string{"first", "second"}, order)
}

package conversation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/futig/realtor-bot/internal/dialogue"
	"github.com/futig/realtor-bot/internal/entity"
	"github.com/futig/realtor-bot/internal/extract"
	"github.com/futig/realtor-bot/internal/repository"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// TurnResult is what the bot sends back for one user action, in order:
// Messages, then Listings, then Footer.
type TurnResult struct {
	Messages       []string
	RequestContact bool
	RemoveKeyboard bool
	Listings       []entity.Listing
	Footer         string
}

func (r *TurnResult) say(texts ...string) {
	r.Messages = append(r.Messages, texts...)
}

// ConversationUsecase drives the Telegram dialogue: name, slot collection,
// contact, paging and intents.
type ConversationUsecase struct {
	sessions repository.SessionRepository
	bookings repository.BookingRepository
	listings ListingsConnector
	merger   AnswerMerger
	resolver PlaceResolver
	checker  *dialogue.Checker
	labels   dialogue.Labels
	limit    int
	locks    *keyedMutex
	logger   *zap.Logger
}

func NewUsecase(
	sessions repository.SessionRepository,
	bookings repository.BookingRepository,
	listings ListingsConnector,
	merger AnswerMerger,
	resolver PlaceResolver,
	checker *dialogue.Checker,
	labels dialogue.Labels,
	limit int,
	logger *zap.Logger,
) *ConversationUsecase {
	return &ConversationUsecase{
		sessions: sessions,
		bookings: bookings,
		listings: listings,
		merger:   merger,
		resolver: resolver,
		checker:  checker,
		labels:   labels,
		limit:    limit,
		locks:    newKeyedMutex(),
		logger:   logger,
	}
}

// Start registers the user, opens a fresh session and asks for a name.
func (uc *ConversationUsecase) Start(ctx context.Context, user entity.User) (*TurnResult, error) {
	unlock := uc.locks.Lock(user.TelegramUserID)
	defer unlock()

	if err := uc.sessions.UpsertUser(ctx, user); err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}

	if prev, err := uc.sessions.GetActiveSession(ctx, user.TelegramUserID); err == nil {
		if err := uc.sessions.CloseSession(ctx, prev.ID); err != nil {
			return nil, fmt.Errorf("close session: %w", err)
		}
	} else if !errors.Is(err, entity.ErrSessionNotFound) {
		return nil, fmt.Errorf("get session: %w", err)
	}

	session, err := uc.newSession(ctx, user.TelegramUserID)
	if err != nil {
		return nil, err
	}

	res := &TurnResult{RemoveKeyboard: true}
	res.say(welcomeText, uc.askNameText())
	uc.logOut(ctx, session.ID, res.Messages...)

	ctxzap.Info(ctx, "conversation started", zap.String("session_id", session.ID))
	return res, nil
}

// Cancel closes the active session. The next message starts a new one.
func (uc *ConversationUsecase) Cancel(ctx context.Context, user entity.User) (*TurnResult, error) {
	unlock := uc.locks.Lock(user.TelegramUserID)
	defer unlock()

	session, err := uc.sessions.GetActiveSession(ctx, user.TelegramUserID)
	if err != nil {
		if errors.Is(err, entity.ErrSessionNotFound) {
			return &TurnResult{Messages: []string{nothingToCancel}, RemoveKeyboard: true}, nil
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	if err := uc.sessions.CloseSession(ctx, session.ID); err != nil {
		return nil, fmt.Errorf("close session: %w", err)
	}

	ctxzap.Info(ctx, "conversation cancelled", zap.String("session_id", session.ID))
	return &TurnResult{Messages: []string{sessionClosed}, RemoveKeyboard: true}, nil
}

// HandleText processes a free-text message: the name first, then answers
// merged into the slot state. Paging and intent messages are routed to More
// and RecordIntent.
func (uc *ConversationUsecase) HandleText(ctx context.Context, user entity.User, text, replyTo string) (*TurnResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return &TurnResult{}, nil
	}
	if IsMore(text) {
		return uc.More(ctx, user)
	}

	unlock := uc.locks.Lock(user.TelegramUserID)

	session, err := uc.activeSession(ctx, user)
	if err != nil {
		unlock()
		return nil, err
	}

	if session.Answers.Has(entity.KeyName) {
		if intent, ok := DetectIntent(text); ok {
			unlock()
			return uc.RecordIntent(ctx, user, intent, ListingIDFrom(text, replyTo))
		}
	}
	defer unlock()

	uc.logIn(ctx, session.ID, text)

	if !session.Answers.Has(entity.KeyName) {
		return uc.acceptName(ctx, session, text)
	}

	prior := session.Filters
	var priorRef *entity.Filters
	if !prior.IsZero() {
		priorRef = &prior
	}

	// A single open question means the message most likely answers it.
	if open := uc.checker.Missing(session.Answers, uc.checker.QuestionKeys()); len(open) == 1 && !session.ContactReceived {
		session.Answers = uc.merger.MergeReply(session.Answers, open[0], text, priorRef)
	} else {
		session.Answers = uc.merger.Merge(session.Answers, text, priorRef)
	}
	uc.resolvePlace(session.Answers, text)

	ctxzap.Debug(ctx, "answers merged", zap.Any("answers", session.Answers))

	res := &TurnResult{}

	if session.ContactReceived {
		updated := dialogue.FiltersFromAnswers(session.Answers)
		session.Filters = updated
		session.PageOffset = 0
		if err := uc.sessions.UpdateSession(ctx, session); err != nil {
			return nil, fmt.Errorf("update session: %w", err)
		}

		if diff, ok := dialogue.DiffFilters(prior, updated, uc.labels); ok {
			res.say(fmt.Sprintf(filtersUpdated, diff))
		} else {
			res.say(filtersRefreshed)
		}
		uc.showResults(ctx, session, res)
		return res, nil
	}

	missing := uc.checker.Missing(session.Answers, uc.checker.QuestionKeys())
	if len(missing) == 0 {
		session.Stage = entity.StageAskContact
		res.RequestContact = true
		res.say(readyForContact)
	} else {
		res.say(uc.bulletedQuestions(missing))
	}

	if err := uc.sessions.UpdateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("update session: %w", err)
	}
	uc.logOut(ctx, session.ID, res.Messages...)

	return res, nil
}

func (uc *ConversationUsecase) acceptName(ctx context.Context, session *entity.Session, name string) (*TurnResult, error) {
	session.Answers[entity.KeyName] = name
	session.Stage = entity.StageCollecting
	if err := uc.sessions.UpdateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("update session: %w", err)
	}

	res := &TurnResult{}
	res.say(greetByName(name), uc.bulletedQuestions(uc.checker.QuestionKeys()))
	uc.logOut(ctx, session.ID, res.Messages...)
	return res, nil
}

// ShareContact stores the phone, logs the initial booking and sends the
// first page of results.
func (uc *ConversationUsecase) ShareContact(ctx context.Context, user entity.User, phone string) (*TurnResult, error) {
	unlock := uc.locks.Lock(user.TelegramUserID)
	defer unlock()

	session, err := uc.activeSession(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := uc.sessions.SetUserPhone(ctx, user.TelegramUserID, phone); err != nil {
		return nil, fmt.Errorf("set phone: %w", err)
	}
	user.Phone = phone

	session.Filters = dialogue.FiltersFromAnswers(session.Answers)
	session.PageOffset = 0
	session.ContactReceived = true
	session.Stage = entity.StageBrowsing
	if err := uc.sessions.UpdateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("update session: %w", err)
	}

	human := dialogue.DescribeFilters(session.Answers, session.Filters, uc.labels)
	uc.book(ctx, user, session, entity.IntentContact, "", human, initialComment)

	res := &TurnResult{RemoveKeyboard: true}
	res.say(contactThanks)
	uc.showResults(ctx, session, res)
	return res, nil
}

// More advances to the next page of results.
func (uc *ConversationUsecase) More(ctx context.Context, user entity.User) (*TurnResult, error) {
	unlock := uc.locks.Lock(user.TelegramUserID)
	defer unlock()

	session, err := uc.activeSession(ctx, user)
	if err != nil {
		return nil, err
	}
	if !session.ContactReceived {
		return nil, entity.ErrContactRequired
	}

	session.PageOffset += uc.limit
	if session.Total > 0 && session.PageOffset >= session.Total {
		session.PageOffset -= uc.limit
		return &TurnResult{Messages: []string{noMoreListings}}, nil
	}

	if err := uc.sessions.UpdateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("update session: %w", err)
	}

	res := &TurnResult{}
	uc.showResults(ctx, session, res)
	return res, nil
}

// RecordIntent writes a booking row for a view, like or contact request.
// A like without a listing id only asks for the id.
func (uc *ConversationUsecase) RecordIntent(ctx context.Context, user entity.User, intent entity.BookingIntent, listingID string) (*TurnResult, error) {
	unlock := uc.locks.Lock(user.TelegramUserID)
	defer unlock()

	session, err := uc.activeSession(ctx, user)
	if err != nil {
		return nil, err
	}

	if stored, err := uc.sessions.GetUser(ctx, user.TelegramUserID); err == nil {
		user.Phone = stored.Phone
	}

	session.Filters = dialogue.MergeFilters(session.Filters, dialogue.FiltersFromAnswers(session.Answers))
	human := dialogue.DescribeFilters(session.Answers, session.Filters, uc.labels)

	res := &TurnResult{}
	switch intent {
	case entity.IntentView:
		uc.book(ctx, user, session, intent, listingID, viewTitlePrefix+human, viewComment)
		res.say(viewRecorded)
	case entity.IntentLike:
		if listingID == "" {
			res.say(likeNeedsID)
			break
		}
		uc.book(ctx, user, session, intent, listingID, likeTitlePrefix+human, likeComment)
		res.say(fmt.Sprintf(likeRecorded, listingID))
	case entity.IntentContact, entity.IntentCall:
		uc.book(ctx, user, session, intent, "", contactTitlePrefix+human, contactComment)
		res.say(contactRecorded)
	default:
		return nil, fmt.Errorf("%w: intent %q", entity.ErrInvalidParameter, intent)
	}

	uc.logOut(ctx, session.ID, res.Messages...)
	return res, nil
}

func (uc *ConversationUsecase) showResults(ctx context.Context, session *entity.Session, res *TurnResult) {
	page, err := uc.listings.Search(ctx, session.Filters, uc.limit, session.PageOffset)
	if err != nil {
		ctxzap.Error(ctx, "listings search failed", zap.Error(err))
		res.say(listingsFailed)
		return
	}

	if len(page.Items) == 0 {
		res.say(noListings)
		return
	}

	want, _ := session.Answers.Int(entity.KeyConditionIn)
	items := filterByCondition(page.Items, want)
	if len(items) > uc.limit {
		items = items[:uc.limit]
	}
	res.Listings = items

	if remain := page.Total - (session.PageOffset + len(items)); remain > 0 {
		res.Footer = fmt.Sprintf(moreListings, remain, uc.limit)
	}

	session.Total = page.Total
	if err := uc.sessions.UpdateSession(ctx, session); err != nil {
		ctxzap.Warn(ctx, "failed to store listings total", zap.Error(err))
	}

	uc.logOut(ctx, session.ID, fmt.Sprintf("listings offset=%d shown=%d total=%d", session.PageOffset, len(items), page.Total))
}

// filterByCondition drops items that contradict the wanted renovation state.
// When every item would be dropped the page is returned unchanged.
func filterByCondition(items []entity.Listing, want int) []entity.Listing {
	renovated := want == int(entity.ConditionRenovated)
	unrenovated := want == int(entity.ConditionFromDeveloper) || want == int(entity.ConditionNeedsRenovation)
	if !renovated && !unrenovated {
		return items
	}

	kept := make([]entity.Listing, 0, len(items))
	for _, it := range items {
		cond := listingCondition(it)
		switch {
		case renovated && (cond == entity.ConditionFromDeveloper || cond == entity.ConditionNeedsRenovation):
			continue
		case unrenovated && cond == entity.ConditionRenovated:
			continue
		}
		kept = append(kept, it)
	}

	if len(kept) == 0 {
		return items
	}
	return kept
}

func listingCondition(it entity.Listing) entity.ConditionCode {
	if it.Condition != 0 {
		return entity.ConditionCode(it.Condition)
	}
	c, _ := extract.ConditionLastCue(strings.Join([]string{it.Title, it.Address, it.Description}, " "))
	return c
}

// resolvePlace fills location ids from the places file when the lexicons
// found none.
func (uc *ConversationUsecase) resolvePlace(answers entity.Answers, text string) {
	if answers.Has(entity.KeyDistrictID) || answers.Has(entity.KeyMicroareaID) || uc.resolver == nil {
		return
	}

	loc, ok := uc.resolver.Resolve(text)
	if !ok {
		return
	}
	if loc.StreetID != 0 {
		answers[entity.KeyStreetID] = loc.StreetID
	}
	if loc.MicroareaID != 0 {
		answers[entity.KeyMicroareaID] = loc.MicroareaID
	}
	if loc.DistrictID != 0 {
		answers[entity.KeyDistrictID] = loc.DistrictID
	}
}

func (uc *ConversationUsecase) book(
	ctx context.Context,
	user entity.User,
	session *entity.Session,
	intent entity.BookingIntent,
	listingID, title, comment string,
) {
	fullName := strings.TrimSpace(session.Answers.String(entity.KeyName))
	if fullName == "" {
		fullName = user.FirstName
	}

	b := &entity.Booking{
		FullName:       fullName,
		Phone:          user.Phone,
		TgUsername:     user.Username,
		TelegramUserID: user.TelegramUserID,
		Intent:         intent,
		ListingID:      listingID,
		ListingTitle:   title,
		Filters:        session.Filters,
		FiltersHuman:   dialogue.DescribeFilters(session.Answers, session.Filters, uc.labels),
		Comment:        comment,
	}

	// A lost booking row must not break the dialogue.
	if err := uc.bookings.AddBooking(ctx, b); err != nil {
		ctxzap.Error(ctx, "failed to append booking",
			zap.String("intent", string(intent)),
			zap.Error(err),
		)
		return
	}

	ctxzap.Info(ctx, "booking recorded",
		zap.String("intent", string(intent)),
		zap.String("listing_id", listingID),
		zap.Any("filters", dialogue.FiltersRecord(session.Answers, session.Filters, uc.labels)),
	)
}

func (uc *ConversationUsecase) activeSession(ctx context.Context, user entity.User) (*entity.Session, error) {
	session, err := uc.sessions.GetActiveSession(ctx, user.TelegramUserID)
	if err == nil {
		if session.Answers == nil {
			session.Answers = entity.Answers{}
		}
		return session, nil
	}
	if !errors.Is(err, entity.ErrSessionNotFound) {
		return nil, fmt.Errorf("get session: %w", err)
	}

	// Memory sessions expire; start over as /start would, without the greeting.
	if err := uc.sessions.UpsertUser(ctx, user); err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}
	return uc.newSession(ctx, user.TelegramUserID)
}

func (uc *ConversationUsecase) newSession(ctx context.Context, telegramUserID int64) (*entity.Session, error) {
	session := &entity.Session{
		TelegramUserID: telegramUserID,
		Status:         entity.SessionStatusActive,
		Stage:          entity.StageAskName,
		Answers:        entity.Answers{},
	}
	if err := uc.sessions.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return session, nil
}

func (uc *ConversationUsecase) askNameText() string {
	if t := uc.checker.Text(dialogue.SlotName); t != "" {
		return t
	}
	return defaultAskName
}

func (uc *ConversationUsecase) bulletedQuestions(keys []string) string {
	texts := make([]string, 0, len(keys))
	for _, k := range keys {
		texts = append(texts, uc.checker.Text(k))
	}
	return bulleted(texts)
}

func (uc *ConversationUsecase) logIn(ctx context.Context, sessionID, text string) {
	uc.storeMessage(ctx, sessionID, entity.DirectionIn, text)
}

func (uc *ConversationUsecase) logOut(ctx context.Context, sessionID string, texts ...string) {
	for _, t := range texts {
		uc.storeMessage(ctx, sessionID, entity.DirectionOut, t)
	}
}

func (uc *ConversationUsecase) storeMessage(ctx context.Context, sessionID string, dir entity.MessageDirection, text string) {
	err := uc.sessions.AddMessage(ctx, entity.SessionMessage{
		SessionID: sessionID,
		Direction: dir,
		Text:      text,
	})
	if err != nil {
		ctxzap.Warn(ctx, "failed to store message", zap.String("direction", string(dir)), zap.Error(err))
	}
}

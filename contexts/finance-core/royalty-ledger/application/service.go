package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"soundmint/contexts/finance-core/royalty-ledger/domain/entities"
	domainerrors "soundmint/contexts/finance-core/royalty-ledger/domain/errors"
	"soundmint/contexts/finance-core/royalty-ledger/ports"
	"soundmint/internal/shared/address"
	"soundmint/internal/shared/authority"
)

const (
	serviceName          = "royalty-ledger"
	eventTypeDistributed = "royalty.distributed"
	eventSchemaVersion   = 1
)

// Service owns royalty splits and the per-work revenue ledger. Distributed
// funds sit on the escrow account until collaborators claim them.
type Service struct {
	Repo          ports.Repository
	Works         ports.Works
	Treasury      ports.Treasury
	Ledger        ports.Ledger
	Outbox        ports.OutboxWriter
	Clock         ports.Clock
	IDGen         ports.IDGenerator
	EscrowAccount string
	Logger        *slog.Logger
}

type distributedEventData struct {
	WorkID      string `json:"work_id"`
	GrossAmount uint64 `json:"gross_amount"`
	PlatformFee uint64 `json:"platform_fee"`
	NetAmount   uint64 `json:"net_amount"`
}

// CreateSplit fixes the revenue shares for a work. Shares must sum to exactly
// 10000 basis points and the split is immutable afterwards.
func (s Service) CreateSplit(ctx context.Context, caller string, workID string, collaborators []ports.CollaboratorInput) (entities.RoyaltySplit, error) {
	workID = strings.TrimSpace(workID)
	if workID == "" {
		return entities.RoyaltySplit{}, fmt.Errorf("%w: work id is required", domainerrors.ErrInvalidInput)
	}
	if len(collaborators) == 0 {
		return entities.RoyaltySplit{}, fmt.Errorf("%w: at least one collaborator", domainerrors.ErrInvalidInput)
	}
	if len(collaborators) > ports.MaxCollaborators {
		return entities.RoyaltySplit{}, domainerrors.ErrTooManyCollaborators
	}

	owner, err := s.Works.WorkAuthority(ctx, workID)
	if err != nil {
		return entities.RoyaltySplit{}, err
	}
	if err := authority.Require(owner, caller); err != nil {
		return entities.RoyaltySplit{}, err
	}

	var sum uint64
	members := make([]entities.Collaborator, 0, len(collaborators))
	for _, input := range collaborators {
		input.Address = strings.TrimSpace(input.Address)
		if input.Address == "" {
			return entities.RoyaltySplit{}, fmt.Errorf("%w: address is required", domainerrors.ErrInvalidCollaborator)
		}
		if input.ShareBasisPoints == 0 {
			return entities.RoyaltySplit{}, fmt.Errorf("%w: zero share", domainerrors.ErrInvalidCollaborator)
		}
		if len(input.Name) > ports.MaxCollaboratorNameLen {
			return entities.RoyaltySplit{}, fmt.Errorf("%w: collaborator name", domainerrors.ErrStringTooLong)
		}
		sum += input.ShareBasisPoints
		if sum > ports.TotalBasisPoints {
			return entities.RoyaltySplit{}, domainerrors.ErrInvalidBasisPoints
		}
		members = append(members, entities.Collaborator{
			Address:          input.Address,
			Name:             input.Name,
			ShareBasisPoints: input.ShareBasisPoints,
		})
	}
	if sum != ports.TotalBasisPoints {
		return entities.RoyaltySplit{}, domainerrors.ErrInvalidBasisPoints
	}

	split := entities.RoyaltySplit{
		SplitID:          address.Derive(address.NamespaceRoyaltySplit, workID),
		WorkID:           workID,
		Collaborators:    members,
		TotalBasisPoints: ports.TotalBasisPoints,
		CreatedAt:        s.now(),
	}
	if err := s.Repo.CreateSplit(ctx, split); err != nil {
		return entities.RoyaltySplit{}, err
	}

	s.logger().InfoContext(ctx, "royalty split created",
		slog.String("event", "split_created"),
		slog.String("module", serviceName),
		slog.String("work_id", workID),
		slog.Int("collaborators", len(members)),
	)
	return split, nil
}

func (s Service) GetSplit(ctx context.Context, workID string) (entities.RoyaltySplit, error) {
	return s.Repo.GetSplit(ctx, strings.TrimSpace(workID))
}

// DistributeRevenue skims the platform fee to the treasury and credits the
// remainder to the split's collaborators in proportion to their shares. The
// integer remainder of the division goes to the first collaborator.
func (s Service) DistributeRevenue(ctx context.Context, caller string, workID string, amount uint64) (entities.RoyaltySplit, error) {
	policy, err := s.Treasury.DistributionPolicy(ctx)
	if err != nil {
		return entities.RoyaltySplit{}, err
	}
	if err := authority.Require(policy.StreamingProvider, caller); err != nil {
		return entities.RoyaltySplit{}, err
	}
	return s.distribute(ctx, caller, workID, amount, policy)
}

func (s Service) distribute(ctx context.Context, payer string, workID string, amount uint64, policy ports.DistributionPolicy) (entities.RoyaltySplit, error) {
	if amount == 0 {
		return entities.RoyaltySplit{}, domainerrors.ErrAmountTooSmall
	}
	split, err := s.Repo.GetSplit(ctx, strings.TrimSpace(workID))
	if err != nil {
		return entities.RoyaltySplit{}, err
	}

	fee, err := basisPointShare(amount, policy.PlatformFeeBasisPoints)
	if err != nil {
		return entities.RoyaltySplit{}, err
	}
	net := amount - fee

	// Compute every payout before moving funds so a failure changes nothing.
	payouts := make([]uint64, len(split.Collaborators))
	var paid uint64
	for i, member := range split.Collaborators {
		share, err := basisPointShare(net, member.ShareBasisPoints)
		if err != nil {
			return entities.RoyaltySplit{}, err
		}
		payouts[i] = share
		paid += share
	}
	payouts[0] += net - paid

	for i, member := range split.Collaborators {
		if member.AmountEarned > math.MaxUint64-payouts[i] {
			return entities.RoyaltySplit{}, domainerrors.ErrRevenueOverflow
		}
	}
	if split.TotalRevenueCollected > math.MaxUint64-amount {
		return entities.RoyaltySplit{}, domainerrors.ErrRevenueOverflow
	}

	if fee > 0 {
		if err := s.Ledger.Transfer(ctx, payer, policy.TreasuryWallet, fee); err != nil {
			return entities.RoyaltySplit{}, err
		}
		if err := s.Treasury.AccrueRevenue(ctx, fee); err != nil {
			s.refundTransfer(ctx, policy.TreasuryWallet, payer, fee)
			return entities.RoyaltySplit{}, err
		}
	}
	if net > 0 {
		if err := s.Ledger.Transfer(ctx, payer, s.EscrowAccount, net); err != nil {
			s.reverseFee(ctx, payer, policy, fee)
			return entities.RoyaltySplit{}, err
		}
	}

	for i := range split.Collaborators {
		split.Collaborators[i].AmountEarned += payouts[i]
	}
	split.TotalRevenueCollected += amount
	split.LastRevenueAt = s.now()
	if err := s.Repo.UpdateSplit(ctx, split); err != nil {
		s.reverseFee(ctx, payer, policy, fee)
		s.refundTransfer(ctx, s.EscrowAccount, payer, net)
		return entities.RoyaltySplit{}, err
	}
	if err := s.appendDistributedEvent(ctx, split.WorkID, amount, fee, net); err != nil {
		return entities.RoyaltySplit{}, err
	}

	s.logger().InfoContext(ctx, "revenue distributed",
		slog.String("event", "revenue_distributed"),
		slog.String("module", serviceName),
		slog.String("work_id", split.WorkID),
		slog.Uint64("gross", amount),
		slog.Uint64("platform_fee", fee),
		slog.Uint64("net", net),
	)
	return split, nil
}

// reverseFee returns the skimmed fee to the payer and backs it out of the
// treasury accumulator when a distribution fails after the fee settled.
func (s Service) reverseFee(ctx context.Context, payer string, policy ports.DistributionPolicy, fee uint64) {
	if fee == 0 {
		return
	}
	s.refundTransfer(ctx, policy.TreasuryWallet, payer, fee)
	if err := s.Treasury.ReverseRevenue(ctx, fee); err != nil {
		s.logger().ErrorContext(ctx, "fee accrual reversal failed",
			slog.String("event", "royalty_fee_reversal_failed"),
			slog.String("module", serviceName),
			slog.Uint64("amount", fee),
			slog.String("error", err.Error()),
		)
	}
}

// refundTransfer moves compensation funds back to the payer. A refund that
// cannot settle is logged so operators can reconcile; the caller still sees
// the original failure.
func (s Service) refundTransfer(ctx context.Context, from string, to string, amount uint64) {
	if amount == 0 {
		return
	}
	if err := s.Ledger.Transfer(ctx, from, to, amount); err != nil {
		s.logger().ErrorContext(ctx, "refund transfer failed",
			slog.String("event", "royalty_refund_failed"),
			slog.String("module", serviceName),
			slog.String("from", from),
			slog.String("to", to),
			slog.Uint64("amount", amount),
			slog.String("error", err.Error()),
		)
	}
}

// TrackRevenue appends one transaction to the work's revenue log, creating
// the tracker on first use. The log retains the most recent entries only.
func (s Service) TrackRevenue(ctx context.Context, caller string, workID string, amount uint64, source string, description string, category string) (entities.RevenueTracker, error) {
	workID = strings.TrimSpace(workID)
	if amount == 0 {
		return entities.RevenueTracker{}, domainerrors.ErrAmountTooSmall
	}
	if len(source) > ports.MaxSourceLength {
		return entities.RevenueTracker{}, fmt.Errorf("%w: source", domainerrors.ErrStringTooLong)
	}
	if len(description) > ports.MaxTxDescriptionLength {
		return entities.RevenueTracker{}, fmt.Errorf("%w: description", domainerrors.ErrStringTooLong)
	}
	cat := entities.RevenueCategory(strings.TrimSpace(category))
	if !entities.IsValidRevenueCategory(cat) {
		return entities.RevenueTracker{}, fmt.Errorf("%w: %q", domainerrors.ErrInvalidCategory, category)
	}

	owner, err := s.Works.WorkAuthority(ctx, workID)
	if err != nil {
		return entities.RevenueTracker{}, err
	}
	if err := authority.Require(owner, caller); err != nil {
		return entities.RevenueTracker{}, err
	}

	return s.track(ctx, workID, amount, source, description, cat)
}

func (s Service) track(ctx context.Context, workID string, amount uint64, source string, description string, category entities.RevenueCategory) (entities.RevenueTracker, error) {
	now := s.now()
	tracker, err := s.Repo.GetTracker(ctx, workID)
	if err != nil {
		if !errors.Is(err, domainerrors.ErrTrackerNotFound) {
			return entities.RevenueTracker{}, err
		}
		tracker = entities.RevenueTracker{
			TrackerID: address.Derive(address.NamespaceRevenueTracker, workID),
			WorkID:    workID,
			CreatedAt: now,
		}
	}

	if tracker.TotalRevenue > math.MaxUint64-amount {
		return entities.RevenueTracker{}, domainerrors.ErrRevenueOverflow
	}
	switch category {
	case entities.CategoryStreaming:
		tracker.StreamingTotal += amount
	case entities.CategorySales:
		tracker.SalesTotal += amount
	default:
		tracker.OtherTotal += amount
	}
	tracker.TotalRevenue += amount
	tracker.Transactions = append(tracker.Transactions, entities.RevenueTransaction{
		Amount:      amount,
		Source:      source,
		Description: description,
		Category:    category,
		OccurredAt:  now,
	})
	if len(tracker.Transactions) > ports.MaxTrackedTransactions {
		tracker.Transactions = tracker.Transactions[len(tracker.Transactions)-ports.MaxTrackedTransactions:]
	}
	tracker.UpdatedAt = now

	if err := s.Repo.SaveTracker(ctx, tracker); err != nil {
		return entities.RevenueTracker{}, err
	}
	return tracker, nil
}

func (s Service) GetTracker(ctx context.Context, workID string) (entities.RevenueTracker, error) {
	return s.Repo.GetTracker(ctx, strings.TrimSpace(workID))
}

// ClaimRevenue pays a collaborator everything earned since their last claim.
func (s Service) ClaimRevenue(ctx context.Context, caller string, workID string) (uint64, error) {
	split, err := s.Repo.GetSplit(ctx, strings.TrimSpace(workID))
	if err != nil {
		return 0, err
	}

	idx := -1
	for i, member := range split.Collaborators {
		if member.Address == strings.TrimSpace(caller) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return 0, authority.ErrUnauthorized
	}

	claimable := split.Collaborators[idx].AmountEarned - split.Collaborators[idx].AmountClaimed
	if claimable == 0 {
		return 0, domainerrors.ErrNoRevenueToClaim
	}
	if err := s.Ledger.Transfer(ctx, s.EscrowAccount, split.Collaborators[idx].Address, claimable); err != nil {
		return 0, err
	}
	split.Collaborators[idx].AmountClaimed = split.Collaborators[idx].AmountEarned
	if err := s.Repo.UpdateSplit(ctx, split); err != nil {
		return 0, err
	}

	s.logger().InfoContext(ctx, "revenue claimed",
		slog.String("event", "revenue_claimed"),
		slog.String("module", serviceName),
		slog.String("work_id", split.WorkID),
		slog.String("collaborator", split.Collaborators[idx].Address),
		slog.Uint64("amount", claimable),
	)
	return claimable, nil
}

// RegisterStreamingBatch settles a provider report: per record the platform
// fee is skimmed, the net is distributed to the split and a streaming
// transaction is tracked.
func (s Service) RegisterStreamingBatch(ctx context.Context, caller string, records []ports.StreamingRecord) error {
	if len(records) == 0 {
		return fmt.Errorf("%w: empty batch", domainerrors.ErrInvalidInput)
	}
	if len(records) > ports.MaxStreamingBatchSize {
		return domainerrors.ErrBatchTooLarge
	}
	policy, err := s.Treasury.DistributionPolicy(ctx)
	if err != nil {
		return err
	}
	if err := authority.Require(policy.StreamingProvider, caller); err != nil {
		return err
	}
	// The batch settles as a unit: every record must carry a positive amount
	// and resolve to a split before any funds move.
	for _, record := range records {
		if record.Amount == 0 {
			return domainerrors.ErrAmountTooSmall
		}
		if _, err := s.Repo.GetSplit(ctx, strings.TrimSpace(record.WorkID)); err != nil {
			return fmt.Errorf("split for work %s: %w", record.WorkID, err)
		}
	}

	for _, record := range records {
		if _, err := s.distribute(ctx, caller, record.WorkID, record.Amount, policy); err != nil {
			return fmt.Errorf("distribute for work %s: %w", record.WorkID, err)
		}
		if _, err := s.track(ctx, strings.TrimSpace(record.WorkID), record.Amount, record.Source, "streaming batch settlement", entities.CategoryStreaming); err != nil {
			return fmt.Errorf("track for work %s: %w", record.WorkID, err)
		}
	}
	return nil
}

func (s Service) appendDistributedEvent(ctx context.Context, workID string, gross uint64, fee uint64, net uint64) error {
	eventID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return fmt.Errorf("generate event id: %w", err)
	}
	data, err := json.Marshal(distributedEventData{
		WorkID:      workID,
		GrossAmount: gross,
		PlatformFee: fee,
		NetAmount:   net,
	})
	if err != nil {
		return fmt.Errorf("encode distributed event: %w", err)
	}
	return s.Outbox.AppendOutbox(ctx, ports.EventEnvelope{
		EventID:       eventID,
		EventType:     eventTypeDistributed,
		SourceService: serviceName,
		OccurredAtUTC: s.now().UTC(),
		EntityType:    "royalty_split",
		EntityID:      workID,
		SchemaVersion: eventSchemaVersion,
		Data:          data,
	})
}

// basisPointShare computes amount*bps/10000 with an explicit overflow check.
func basisPointShare(amount uint64, bps uint64) (uint64, error) {
	if bps == 0 || amount == 0 {
		return 0, nil
	}
	if amount > math.MaxUint64/bps {
		return 0, domainerrors.ErrRevenueOverflow
	}
	return amount * bps / ports.TotalBasisPoints, nil
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now()
}

func (s Service) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}

package leave

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jiayiepang-code/lumiere-salon-backend/internal/domain/auth"
	"github.com/jiayiepang-code/lumiere-salon-backend/internal/domain/booking"
	"github.com/jiayiepang-code/lumiere-salon-backend/internal/domain/leave"
	"github.com/jiayiepang-code/lumiere-salon-backend/internal/domain/notification"
	"github.com/jiayiepang-code/lumiere-salon-backend/internal/domain/schedule"
	"github.com/jiayiepang-code/lumiere-salon-backend/internal/domain/staff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testRequestID  = "01923456-0000-7000-8000-000000000001"
	testStaffID    = "01923456-0000-7000-8000-000000000002"
	testApproverID = "01923456-0000-7000-8000-000000000003"
)

// fakeTxRunner runs fn with the same context. committed reports whether
// the last transactional block returned without error.
type fakeTxRunner struct {
	committed  bool
	rolledBack bool
}

func (f *fakeTxRunner) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	err := fn(ctx)
	if err != nil {
		f.rolledBack = true
		return err
	}
	f.committed = true
	return nil
}

type fakeLeaveRepo struct {
	mu       sync.Mutex
	requests map[string]leave.LeaveRequest
	listResp []leave.LeaveRequest

	// forcePendingRead simulates a reader that raced ahead of another
	// decision's commit: GetByID reports pending even after the row has
	// transitioned.
	forcePendingRead bool
}

func newFakeLeaveRepo(requests ...leave.LeaveRequest) *fakeLeaveRepo {
	m := make(map[string]leave.LeaveRequest, len(requests))
	for _, r := range requests {
		m[r.ID] = r
	}
	return &fakeLeaveRepo{requests: m}
}

func (f *fakeLeaveRepo) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	if f.forcePendingRead {
		r.Status = leave.LeaveRequestStatusPending
	}
	return r, nil
}

func (f *fakeLeaveRepo) List(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, int64, error) {
	return f.listResp, int64(len(f.listResp)), nil
}

func (f *fakeLeaveRepo) UpdateStatusIfPending(ctx context.Context, id string, status leave.LeaveRequestStatus, decidedBy string, rejectionReason *string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.requests[id]
	if !ok || r.Status != leave.LeaveRequestStatusPending {
		return false, nil
	}
	now := time.Now()
	r.Status = status
	r.DecidedBy = &decidedBy
	r.DecidedAt = &now
	r.RejectionReason = rejectionReason
	f.requests[id] = r
	return true, nil
}

type fakeScheduleRepo struct {
	mu      sync.Mutex
	upserts []time.Time
	err     error
}

func (f *fakeScheduleRepo) UpsertLeaveDay(ctx context.Context, staffID string, day time.Time) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upserts = append(f.upserts, day)
	return nil
}

func (f *fakeScheduleRepo) ListByStaffAndRange(ctx context.Context, staffID string, start, end time.Time) ([]schedule.StaffScheduleEntry, error) {
	return nil, nil
}

type fakeBookingRepo struct {
	mu        sync.Mutex
	conflicts []booking.Conflict
	remarks   map[string][]string
	findErr   error
	remarkErr error
}

func newFakeBookingRepo(conflicts ...booking.Conflict) *fakeBookingRepo {
	return &fakeBookingRepo{conflicts: conflicts, remarks: make(map[string][]string)}
}

func (f *fakeBookingRepo) FindConflicts(ctx context.Context, staffID string, start, end time.Time) ([]booking.Conflict, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.conflicts, nil
}

func (f *fakeBookingRepo) AppendConflictRemark(ctx context.Context, bookingID, marker string) error {
	if f.remarkErr != nil {
		return f.remarkErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.remarks[bookingID] = append(f.remarks[bookingID], marker)
	return nil
}

type fakeStaffRepo struct {
	staff map[string]staff.Staff
}

func (f *fakeStaffRepo) GetByID(ctx context.Context, id string) (staff.Staff, error) {
	s, ok := f.staff[id]
	if !ok {
		return staff.Staff{}, staff.ErrStaffNotFound
	}
	return s, nil
}

func (f *fakeStaffRepo) GetByEmail(ctx context.Context, email string) (staff.Staff, error) {
	for _, s := range f.staff {
		if s.Email == email {
			return s, nil
		}
	}
	return staff.Staff{}, staff.ErrStaffNotFound
}

type fakeDispatcher struct {
	mu        sync.Mutex
	calls     int
	conflicts []booking.Conflict
	report    notification.DispatchReport
}

func (f *fakeDispatcher) Dispatch(ctx context.Context, leaveCtx notification.LeaveContext, conflicts []booking.Conflict) notification.DispatchReport {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.conflicts = conflicts
	return f.report
}

type fakeNotifier struct {
	mu     sync.Mutex
	queued []notification.CreateNotificationRequest
}

func (f *fakeNotifier) QueueNotification(ctx context.Context, req notification.CreateNotificationRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queued = append(f.queued, req)
	return nil
}

func (f *fakeNotifier) GetNotifications(ctx context.Context, recipientID string, page, pageSize int, unreadOnly bool) (*notification.NotificationListResponse, error) {
	return &notification.NotificationListResponse{}, nil
}

func (f *fakeNotifier) GetUnreadCount(ctx context.Context, recipientID string) (int, error) {
	return 0, nil
}

func (f *fakeNotifier) MarkAsRead(ctx context.Context, recipientID string, req notification.MarkAsReadRequest) error {
	return nil
}

func (f *fakeNotifier) MarkAllAsRead(ctx context.Context, recipientID string) error {
	return nil
}

func (f *fakeNotifier) Subscribe(ctx context.Context, recipientID string) (<-chan notification.SSEEvent, func()) {
	ch := make(chan notification.SSEEvent)
	return ch, func() { close(ch) }
}

func (f *fakeNotifier) Stop() {}

type approvalFixture struct {
	tx         *fakeTxRunner
	leaveRepo  *fakeLeaveRepo
	schedRepo  *fakeScheduleRepo
	bookRepo   *fakeBookingRepo
	staffRepo  *fakeStaffRepo
	dispatcher *fakeDispatcher
	notifier   *fakeNotifier
	service    leave.ApprovalService
}

func newApprovalFixture(request leave.LeaveRequest, conflicts ...booking.Conflict) *approvalFixture {
	fx := &approvalFixture{
		tx:        &fakeTxRunner{},
		leaveRepo: newFakeLeaveRepo(request),
		schedRepo: &fakeScheduleRepo{},
		bookRepo:  newFakeBookingRepo(conflicts...),
		staffRepo: &fakeStaffRepo{staff: map[string]staff.Staff{
			testApproverID: {ID: testApproverID, FullName: "Maya Lim", Role: staff.RoleManager, IsActive: true},
		}},
		dispatcher: &fakeDispatcher{},
		notifier:   &fakeNotifier{},
	}
	fx.service = NewApprovalService(fx.tx, fx.leaveRepo, fx.schedRepo, fx.bookRepo, fx.staffRepo, fx.dispatcher, fx.notifier)
	return fx
}

func pendingRequest() leave.LeaveRequest {
	name := "Sari Dewi"
	return leave.LeaveRequest{
		ID:        testRequestID,
		StaffID:   testStaffID,
		LeaveType: "annual",
		StartDate: time.Date(2026, 1, 29, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC),
		Reason:    "family trip",
		Status:    leave.LeaveRequestStatusPending,
		StaffName: &name,
	}
}

func approver() auth.Approver {
	return auth.Approver{StaffID: testApproverID, Name: "Maya Lim", Role: staff.RoleManager}
}

func conflictFor(id string) booking.Conflict {
	return booking.Conflict{
		BookingID:     id,
		BookingDate:   time.Date(2026, 1, 30, 0, 0, 0, 0, time.UTC),
		StartTime:     "10:00",
		CustomerName:  "Anita",
		CustomerEmail: "anita@example.com",
		Services:      "Haircut, Hair Spa",
	}
}

func TestApprovalService_Approve_Success(t *testing.T) {
	ctx := context.Background()
	fx := newApprovalFixture(pendingRequest(), conflictFor("b1"), conflictFor("b2"))
	fx.dispatcher.report = notification.DispatchReport{Sent: 2}

	result, err := fx.service.Process(ctx, approver(), testRequestID, leave.DecisionApprove, "")
	require.NoError(t, err)

	assert.Equal(t, string(leave.LeaveRequestStatusApproved), result.Status)
	assert.Equal(t, 2, result.ConflictCount)
	assert.Equal(t, 2, result.NotificationsSent)
	assert.Equal(t, 0, result.NotificationsFailed)

	stored, err := fx.leaveRepo.GetByID(ctx, testRequestID)
	require.NoError(t, err)
	assert.Equal(t, leave.LeaveRequestStatusApproved, stored.Status)
	require.NotNil(t, stored.DecidedBy)
	assert.Equal(t, testApproverID, *stored.DecidedBy)

	assert.True(t, fx.tx.committed)
}

// Jan 29 to Feb 2 crosses a month boundary and must produce exactly one
// schedule write per calendar day, five in total.
func TestApprovalService_Approve_WritesEveryLeaveDay(t *testing.T) {
	ctx := context.Background()
	fx := newApprovalFixture(pendingRequest())

	_, err := fx.service.Process(ctx, approver(), testRequestID, leave.DecisionApprove, "")
	require.NoError(t, err)

	require.Len(t, fx.schedRepo.upserts, 5)
	assert.Equal(t, time.Date(2026, 1, 29, 0, 0, 0, 0, time.UTC), fx.schedRepo.upserts[0])
	assert.Equal(t, time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC), fx.schedRepo.upserts[4])
}

func TestApprovalService_Approve_FlagsEveryConflict(t *testing.T) {
	ctx := context.Background()
	fx := newApprovalFixture(pendingRequest(), conflictFor("b1"), conflictFor("b2"), conflictFor("b3"))

	_, err := fx.service.Process(ctx, approver(), testRequestID, leave.DecisionApprove, "")
	require.NoError(t, err)

	require.Len(t, fx.bookRepo.remarks, 3)
	for _, id := range []string{"b1", "b2", "b3"} {
		require.Len(t, fx.bookRepo.remarks[id], 1)
		assert.Contains(t, fx.bookRepo.remarks[id][0], "Sari Dewi")
		assert.Contains(t, fx.bookRepo.remarks[id][0], "2026-01-29")
		assert.Contains(t, fx.bookRepo.remarks[id][0], "2026-02-02")
	}

	assert.Equal(t, 1, fx.dispatcher.calls)
	assert.Len(t, fx.dispatcher.conflicts, 3)
}

func TestApprovalService_Approve_PartialNotificationFailure(t *testing.T) {
	ctx := context.Background()
	fx := newApprovalFixture(pendingRequest(), conflictFor("b1"), conflictFor("b2"))
	fx.dispatcher.report = notification.DispatchReport{Sent: 1, Failed: 1}

	result, err := fx.service.Process(ctx, approver(), testRequestID, leave.DecisionApprove, "")
	require.NoError(t, err)

	// The decision stands whatever happened to the emails.
	assert.Equal(t, string(leave.LeaveRequestStatusApproved), result.Status)
	assert.Equal(t, 1, result.NotificationsSent)
	assert.Equal(t, 1, result.NotificationsFailed)
}

func TestApprovalService_Approve_BookingErrorRollsBack(t *testing.T) {
	ctx := context.Background()
	fx := newApprovalFixture(pendingRequest(), conflictFor("b1"))
	fx.bookRepo.remarkErr = errors.New("connection reset")

	_, err := fx.service.Process(ctx, approver(), testRequestID, leave.DecisionApprove, "")
	require.Error(t, err)

	assert.True(t, fx.tx.rolledBack)
	assert.Equal(t, 0, fx.dispatcher.calls, "no customer may be notified when the transaction fails")
}

func TestApprovalService_Reject_NoScheduleOrBookingWrites(t *testing.T) {
	ctx := context.Background()
	fx := newApprovalFixture(pendingRequest(), conflictFor("b1"))

	result, err := fx.service.Process(ctx, approver(), testRequestID, leave.DecisionReject, "short staffed that week")
	require.NoError(t, err)

	assert.Equal(t, string(leave.LeaveRequestStatusRejected), result.Status)
	assert.Equal(t, 0, result.ConflictCount)
	assert.Empty(t, fx.schedRepo.upserts)
	assert.Empty(t, fx.bookRepo.remarks)
	assert.Equal(t, 0, fx.dispatcher.calls)

	stored, err := fx.leaveRepo.GetByID(ctx, testRequestID)
	require.NoError(t, err)
	assert.Equal(t, leave.LeaveRequestStatusRejected, stored.Status)
	require.NotNil(t, stored.RejectionReason)
	assert.Equal(t, "short staffed that week", *stored.RejectionReason)
}

func TestApprovalService_Process_AlreadyProcessed(t *testing.T) {
	ctx := context.Background()
	request := pendingRequest()
	request.Status = leave.LeaveRequestStatusApproved
	fx := newApprovalFixture(request)

	_, err := fx.service.Process(ctx, approver(), testRequestID, leave.DecisionApprove, "")
	assert.ErrorIs(t, err, leave.ErrLeaveAlreadyProcessed)
}

// The second of two near-simultaneous decisions reads pending but loses
// the conditional update. It must surface the same conflict error and
// leave no side effects behind.
func TestApprovalService_Process_ConcurrentLoser(t *testing.T) {
	ctx := context.Background()
	fx := newApprovalFixture(pendingRequest(), conflictFor("b1"))

	// First decision wins.
	_, err := fx.service.Process(ctx, approver(), testRequestID, leave.DecisionReject, "")
	require.NoError(t, err)

	// The loser read pending before the winner committed. The
	// conditional update matches zero rows and must surface the same
	// conflict error.
	fx.leaveRepo.forcePendingRead = true
	_, err = fx.service.Process(ctx, approver(), testRequestID, leave.DecisionApprove, "")
	assert.ErrorIs(t, err, leave.ErrLeaveAlreadyProcessed)

	assert.Empty(t, fx.schedRepo.upserts)
	assert.Equal(t, 0, fx.dispatcher.calls)
}

func TestApprovalService_Process_NotFound(t *testing.T) {
	ctx := context.Background()
	fx := newApprovalFixture(pendingRequest())

	_, err := fx.service.Process(ctx, approver(), "01923456-0000-7000-8000-0000000000ff", leave.DecisionApprove, "")
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
}

func TestApprovalService_Process_InvalidRequestID(t *testing.T) {
	ctx := context.Background()
	fx := newApprovalFixture(pendingRequest())

	_, err := fx.service.Process(ctx, approver(), "not-a-uuid", leave.DecisionApprove, "")
	assert.ErrorIs(t, err, leave.ErrInvalidRequestID)
}

func TestApprovalService_Process_InvalidAction(t *testing.T) {
	ctx := context.Background()
	fx := newApprovalFixture(pendingRequest())

	_, err := fx.service.Process(ctx, approver(), testRequestID, leave.DecisionAction("escalate"), "")
	assert.ErrorIs(t, err, leave.ErrInvalidAction)
}

func TestApprovalService_Process_RequiresApproverRole(t *testing.T) {
	ctx := context.Background()
	fx := newApprovalFixture(pendingRequest())

	plainStaff := auth.Approver{StaffID: testApproverID, Name: "Maya Lim", Role: staff.RoleStaff}
	_, err := fx.service.Process(ctx, plainStaff, testRequestID, leave.DecisionApprove, "")
	assert.ErrorIs(t, err, auth.ErrApproverRoleRequired)
}

func TestApprovalService_Process_InactiveApprover(t *testing.T) {
	ctx := context.Background()
	fx := newApprovalFixture(pendingRequest())
	fx.staffRepo.staff[testApproverID] = staff.Staff{ID: testApproverID, Role: staff.RoleManager, IsActive: false}

	_, err := fx.service.Process(ctx, approver(), testRequestID, leave.DecisionApprove, "")
	assert.ErrorIs(t, err, staff.ErrStaffInactive)
}

func TestApprovalService_Approve_QueuesStaffNotification(t *testing.T) {
	ctx := context.Background()
	fx := newApprovalFixture(pendingRequest())

	_, err := fx.service.Process(ctx, approver(), testRequestID, leave.DecisionApprove, "")
	require.NoError(t, err)

	require.Len(t, fx.notifier.queued, 1)
	queued := fx.notifier.queued[0]
	assert.Equal(t, testStaffID, queued.RecipientID)
	assert.Equal(t, notification.TypeLeaveApproved, queued.Type)
	assert.Equal(t, testRequestID, queued.Data["leave_request_id"])
}

func TestApprovalService_PreviewConflicts_ReadOnly(t *testing.T) {
	ctx := context.Background()
	fx := newApprovalFixture(pendingRequest(), conflictFor("b1"), conflictFor("b2"))

	preview, err := fx.service.PreviewConflicts(ctx, testRequestID)
	require.NoError(t, err)

	assert.Equal(t, testRequestID, preview.RequestID)
	assert.Len(t, preview.Conflicts, 2)
	assert.Equal(t, "b1", preview.Conflicts[0].BookingID)

	// Still pending, nothing written.
	stored, err := fx.leaveRepo.GetByID(ctx, testRequestID)
	require.NoError(t, err)
	assert.Equal(t, leave.LeaveRequestStatusPending, stored.Status)
	assert.Empty(t, fx.schedRepo.upserts)
	assert.Empty(t, fx.bookRepo.remarks)
}

func TestApprovalService_Get_And_List(t *testing.T) {
	ctx := context.Background()
	fx := newApprovalFixture(pendingRequest())
	fx.leaveRepo.listResp = []leave.LeaveRequest{pendingRequest()}

	got, err := fx.service.Get(ctx, testRequestID)
	require.NoError(t, err)
	assert.Equal(t, testRequestID, got.ID)
	assert.Equal(t, "2026-01-29", got.StartDate)

	status := string(leave.LeaveRequestStatusPending)
	listed, total, err := fx.service.List(ctx, leave.LeaveRequestFilter{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, listed, 1)
	assert.Equal(t, testRequestID, listed[0].ID)
}

func TestApprovalService_List_RejectsUnknownStatus(t *testing.T) {
	ctx := context.Background()
	fx := newApprovalFixture(pendingRequest())

	status := "escalated"
	_, _, err := fx.service.List(ctx, leave.LeaveRequestFilter{Status: &status})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status")
}

// A single-day request writes exactly one schedule entry.
func TestApprovalService_Approve_SingleDay(t *testing.T) {
	ctx := context.Background()
	request := pendingRequest()
	request.StartDate = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	request.EndDate = request.StartDate
	request.HalfDay = true
	fx := newApprovalFixture(request)

	result, err := fx.service.Process(ctx, approver(), testRequestID, leave.DecisionApprove, "")
	require.NoError(t, err)

	require.Len(t, fx.schedRepo.upserts, 1)
	assert.Equal(t, "2026-03-10", result.StartDate)
	assert.Equal(t, "2026-03-10", result.EndDate)
}

func TestConflictMarker_NamesStaffAndRange(t *testing.T) {
	marker := conflictMarker("Sari Dewi", pendingRequest())
	expected := fmt.Sprintf("Needs reassignment: Sari Dewi on approved leave 2026-01-29 to 2026-02-02 (leave request %s)", testRequestID)
	assert.Equal(t, expected, marker)
}

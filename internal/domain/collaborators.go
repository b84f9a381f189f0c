package domain

import "time"

// CalendarEvent mirrors a booking window in the host calendar. Events are
// keyed by (subject, start, stop) when searched or removed.
type CalendarEvent struct {
	ID      int64
	Subject string
	Start   time.Time
	Stop    time.Time
	AllDay  bool
}

type LedgerPaymentState string

const (
	LedgerPaymentDraft     LedgerPaymentState = "draft"
	LedgerPaymentPosted    LedgerPaymentState = "posted"
	LedgerPaymentCancelled LedgerPaymentState = "cancelled"
)

// LedgerPayment is an inbound payment record in the host accounting ledger,
// tagged with the booking name so the payment workflow can reconcile it.
type LedgerPayment struct {
	ID          int64
	PartnerID   int64
	Amount      int64
	PaymentType string
	Date        time.Time
	NameTag     string
	JournalID   int64
	State       LedgerPaymentState
}

type StockTransferState string

const (
	StockTransferDraft     StockTransferState = "draft"
	StockTransferConfirmed StockTransferState = "confirmed"
	StockTransferReserved  StockTransferState = "reserved"
	StockTransferDone      StockTransferState = "done"
)

// StockTransfer moves product quantity from the main stock location to the
// customer location. The confirm/reserve/finalize chain is applied as one
// unit; a failed step leaves no partial decrement behind.
type StockTransfer struct {
	ID          int64
	ProductID   int64
	PartnerID   int64
	Quantity    int
	SourceLoc   string
	DestLoc     string
	State       StockTransferState
	CreatedAt   time.Time
	CompletedAt *time.Time
}

const (
	StockLocationMain     = "WH/Stock"
	StockLocationCustomer = "Customers"
)

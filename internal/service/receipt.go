package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/mail"
	"regexp"
	"strings"

	"github.com/Munazil1/centswise/internal/domain"
	"github.com/Munazil1/centswise/internal/ledger"
	"github.com/Munazil1/centswise/internal/logger"
	"github.com/Munazil1/centswise/internal/storage"
)

const receiptContentType = "application/pdf"

var unsafeKeyChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// ReceiptRemote is the receipt part of the ledger service.
type ReceiptRemote interface {
	GenerateReceipt(ctx context.Context, creditID string) (domain.Receipt, error)
	ListReceipts(ctx context.Context, q domain.ListQuery) ([]domain.Receipt, error)
	DownloadReceipt(ctx context.Context, receiptID string) ([]byte, error)
}

type receiptService struct {
	remote  ReceiptRemote
	ledgers LedgerProvider
	archive storage.Archive
	mailer  Mailer
}

// NewReceiptService wires receipt issuing. archive and mailer are optional.
func NewReceiptService(r ReceiptRemote, ledgers LedgerProvider, archive storage.Archive, mailer Mailer) ReceiptService {
	return &receiptService{
		remote:  r,
		ledgers: ledgers,
		archive: archive,
		mailer:  mailer,
	}
}

// Issue has the ledger service generate a receipt for a confirmed credit,
// archives the PDF and e-mails it to the donor when their contact is an
// e-mail address. Archive and mail failures are logged, not returned: the
// receipt exists remotely either way.
func (s *receiptService) Issue(ctx context.Context, creditID string) (*domain.Receipt, error) {
	logger.EnterMethod("receiptService.Issue", "creditID", creditID)
	creditID = strings.TrimSpace(creditID)
	if creditID == "" {
		return nil, invalid("creditId", "is required")
	}
	if ledger.IsTemporaryID(creditID) {
		return nil, invalid("creditId", "credit has not been confirmed by the ledger service yet")
	}
	store, err := s.ledgers.Ledger()
	if err != nil {
		return nil, err
	}
	credit, known := store.Credit(creditID)

	rcpt, err := s.remote.GenerateReceipt(ctx, creditID)
	if err != nil {
		logger.ExitMethodWithError("receiptService.Issue", err, "creditID", creditID)
		return nil, fmt.Errorf("generate receipt: %w", err)
	}
	if known {
		if rcpt.SerialNumber == "" {
			rcpt.SerialNumber = credit.SerialNumber
		}
		if rcpt.DonorName == "" {
			rcpt.DonorName = credit.DonorName
		}
		if rcpt.Amount.IsZero() {
			rcpt.Amount = credit.Amount
		}
	}

	pdf, err := s.remote.DownloadReceipt(ctx, rcpt.ID)
	if err != nil {
		logger.ExitMethodWithError("receiptService.Issue", err, "creditID", creditID, "receiptID", rcpt.ID)
		return nil, fmt.Errorf("download receipt %s: %w", rcpt.ID, err)
	}

	if s.archive != nil {
		loc, err := s.archive.Save(ctx, archiveKey(rcpt), receiptContentType, bytes.NewReader(pdf))
		if err != nil {
			logger.Error("Failed to archive receipt", "receiptID", rcpt.ID, "error", err)
		} else {
			rcpt.ArchivePath = loc
		}
	}

	if to, ok := emailAddress(credit.ContactInfo); known && ok && s.mailer != nil {
		if err := s.mailer.SendReceipt(ctx, to, rcpt.DonorName, rcpt, bytes.NewReader(pdf)); err != nil {
			logger.Error("Failed to e-mail receipt", "receiptID", rcpt.ID, "error", err)
		} else {
			rcpt.EmailedTo = to
		}
	}

	logger.ExitMethod("receiptService.Issue", "creditID", creditID, "receiptID", rcpt.ID, "serial", rcpt.SerialNumber)
	return &rcpt, nil
}

func (s *receiptService) ListReceipts(ctx context.Context, q domain.ListQuery) ([]domain.Receipt, error) {
	if _, err := s.ledgers.Ledger(); err != nil {
		return nil, err
	}
	receipts, err := s.remote.ListReceipts(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list receipts: %w", err)
	}
	return receipts, nil
}

// OpenArchived streams a previously archived receipt PDF along with its size.
func (s *receiptService) OpenArchived(ctx context.Context, serial string) (io.ReadCloser, int64, error) {
	if s.archive == nil {
		return nil, 0, storage.ErrNotFound
	}
	key := archiveKey(domain.Receipt{SerialNumber: serial})
	ok, size, err := s.archive.Exists(ctx, key)
	if err != nil {
		return nil, 0, err
	}
	if !ok {
		return nil, 0, storage.ErrNotFound
	}
	rc, err := s.archive.Open(ctx, key)
	if err != nil {
		return nil, 0, err
	}
	return rc, size, nil
}

func archiveKey(r domain.Receipt) string {
	name := unsafeKeyChars.ReplaceAllString(r.SerialNumber, "_")
	if name == "" || strings.Trim(name, "._") == "" {
		name = "receipt-" + unsafeKeyChars.ReplaceAllString(r.ID, "_")
	}
	return "receipts/" + name + ".pdf"
}

// emailAddress extracts a bare address when contact is an e-mail address.
func emailAddress(contact string) (string, bool) {
	contact = strings.TrimSpace(contact)
	if !strings.Contains(contact, "@") {
		return "", false
	}
	addr, err := mail.ParseAddress(contact)
	if err != nil {
		return "", false
	}
	return addr.Address, true
}

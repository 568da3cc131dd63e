package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/stoickegs/internal/domain/models"
	"github.com/mamadbah2/stoickegs/pkg/kegid"
)

// ErrInvalidArguments indicates the command payload could not be parsed.
var ErrInvalidArguments = errors.New("invalid command arguments")

// ErrUnsupportedCommand indicates we do not yet support the requested command.
var ErrUnsupportedCommand = errors.New("unsupported command")

const (
	dateFormat     = "2006-01-02"
	maxOverdueList = 10
)

// HelpText lists the commands staff can send.
const HelpText = "Commands:\n" +
	"/keg <qr or id> - keg details\n" +
	"/stats - fleet counts\n" +
	"/overdue [days] - kegs out too long\n" +
	"/status <qr or id> <full|deployed|dirty|clean> [cider type] - move a keg"

// Store is the part of the keg store the dispatcher drives.
type Store interface {
	GetKeg(id string) (models.Keg, bool)
	GetKegByQRCode(qrCode string) (models.Keg, bool)
	GetCustomer(id string) (models.Customer, bool)
	UpdateKegStatus(id string, in models.UpdateKegStatusInput) (models.Keg, error)
	KegStats() models.KegStats
	OverdueKegs(days int) ([]models.Keg, error)
}

// Dispatcher executes parsed chat commands against the keg store.
type Dispatcher interface {
	HandleCommand(ctx context.Context, cmd models.Command, sender string) (string, error)
}

// Service implements the Dispatcher interface.
type Service struct {
	store       Store
	overdueDays int
	logger      *zap.Logger
	now         func() time.Time
}

// NewService constructs a command dispatcher.
func NewService(store Store, overdueDays int, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:       store,
		overdueDays: overdueDays,
		logger:      logger,
		now:         time.Now,
	}
}

// HandleCommand runs cmd and returns the reply text.
func (s *Service) HandleCommand(ctx context.Context, cmd models.Command, sender string) (string, error) {
	s.logger.Debug("dispatching command", zap.String("command", string(cmd.Type)), zap.String("sender", sender), zap.Strings("args", cmd.Args))

	switch cmd.Type {
	case models.CommandHelp:
		return HelpText, nil
	case models.CommandKeg:
		if len(cmd.Args) != 1 {
			return "", ErrInvalidArguments
		}
		keg, err := s.findKeg(cmd.Args[0])
		if err != nil {
			return "", err
		}
		return s.describeKeg(keg), nil
	case models.CommandStats:
		stats := s.store.KegStats()
		return fmt.Sprintf("Kegs: %d total\nFull %d | Deployed %d | Dirty %d | Clean %d",
			stats.Total, stats.Full, stats.Deployed, stats.Dirty, stats.Clean), nil
	case models.CommandOverdue:
		return s.overdue(cmd.Args)
	case models.CommandStatus:
		return s.updateStatus(cmd.Args, sender)
	default:
		return "", ErrUnsupportedCommand
	}
}

func (s *Service) findKeg(ref string) (models.Keg, error) {
	ref = strings.ToUpper(strings.TrimSpace(ref))
	if keg, ok := s.store.GetKegByQRCode(ref); ok {
		return keg, nil
	}
	id := kegid.ExtractKegIDFromQR(ref)
	if keg, ok := s.store.GetKeg(id); ok {
		return keg, nil
	}
	return models.Keg{}, &models.NotFoundError{Entity: "Keg", ID: ref}
}

func (s *Service) describeKeg(keg models.Keg) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s) %s", keg.ID, keg.Size, strings.ToUpper(string(keg.Status)))
	if keg.CiderType != nil {
		fmt.Fprintf(&b, "\nCider: %s", *keg.CiderType)
	}
	if keg.Location != nil {
		fmt.Fprintf(&b, "\nLocation: %s", *keg.Location)
	}
	if keg.CustomerID != nil {
		name := *keg.CustomerID
		if customer, ok := s.store.GetCustomer(name); ok {
			name = customer.Name
		}
		fmt.Fprintf(&b, "\nCustomer: %s", name)
	}
	if keg.Status == models.KegStatusDeployed && keg.DeployedAt != nil {
		days := int(s.now().Sub(*keg.DeployedAt).Hours() / 24)
		fmt.Fprintf(&b, "\nDeployed %s (%d days)", keg.DeployedAt.Format(dateFormat), days)
	}
	return b.String()
}

func (s *Service) overdue(args []string) (string, error) {
	days := s.overdueDays
	if len(args) > 0 {
		parsed, err := strconv.Atoi(args[0])
		if err != nil || parsed <= 0 {
			return "", ErrInvalidArguments
		}
		days = parsed
	}

	kegs, err := s.store.OverdueKegs(days)
	if err != nil {
		return "", err
	}
	if len(kegs) == 0 {
		return fmt.Sprintf("No kegs deployed for more than %d days.", days), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d kegs deployed for more than %d days:", len(kegs), days)
	for i, keg := range kegs {
		if i == maxOverdueList {
			fmt.Fprintf(&b, "\n...and %d more", len(kegs)-maxOverdueList)
			break
		}
		fmt.Fprintf(&b, "\n%s since %s", keg.ID, keg.DeployedAt.Format(dateFormat))
		if keg.Location != nil {
			fmt.Fprintf(&b, " at %s", *keg.Location)
		}
	}
	return b.String(), nil
}

func (s *Service) updateStatus(args []string, sender string) (string, error) {
	if len(args) < 2 {
		return "", ErrInvalidArguments
	}
	status := models.KegStatus(strings.ToLower(args[1]))
	if !status.Valid() {
		return "", ErrInvalidArguments
	}

	keg, err := s.findKeg(args[0])
	if err != nil {
		return "", err
	}

	input := models.UpdateKegStatusInput{Status: status}
	if len(args) > 2 {
		ciderType := strings.Join(args[2:], " ")
		input.CiderType = &ciderType
	}
	if sender != "" {
		notes := "via WhatsApp from " + sender
		input.Notes = &notes
	}

	updated, err := s.store.UpdateKegStatus(keg.ID, input)
	if err != nil {
		return "", err
	}

	s.logger.Info("keg status changed by chat command",
		zap.String("keg_id", updated.ID),
		zap.String("status", string(updated.Status)),
		zap.String("sender", sender))

	reply := fmt.Sprintf("%s is now %s.", updated.ID, updated.Status)
	if updated.CiderType != nil {
		reply += fmt.Sprintf(" Cider: %s.", *updated.CiderType)
	}
	return reply, nil
}

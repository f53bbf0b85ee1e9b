package village

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/osse101/KubeRPG_Go/internal/domain"
	"github.com/osse101/KubeRPG_Go/internal/logger"
	"github.com/osse101/KubeRPG_Go/internal/utils"
)

// Accounts is what the village needs from the account service
type Accounts interface {
	GetAccount(ctx context.Context, pseudonym string) (*domain.Account, error)
	Stats(ctx context.Context, pseudonym string) (domain.DerivedStats, error)
	Forge(ctx context.Context, pseudonym, itemID string) (*domain.Item, error)
	ToggleEquip(ctx context.Context, pseudonym, itemID string) (*domain.Account, error)
	Save(ctx context.Context, pseudonym string) error
}

// DungeonStarter starts a dungeon run for a party
type DungeonStarter interface {
	Start(ctx context.Context, party []string) (*domain.DungeonSummary, error)
}

// Player is a party member's village state
type Player struct {
	Pseudonym string       `json:"pseudonym"`
	Position  domain.Point `json:"position"`
	HP        int          `json:"hp"`
	MaxHP     int          `json:"max_hp"`
}

// View is a read-only copy of the session
type View struct {
	Selected  string     `json:"selected,omitempty"`
	Party     []Player   `json:"party"`
	Buildings []Building `json:"buildings"`
}

// Interaction is the outcome of using a building
type Interaction struct {
	Building domain.BuildingID      `json:"building"`
	Forged   *domain.Item           `json:"forged,omitempty"`
	Healed   []string               `json:"healed,omitempty"`
	Saved    string                 `json:"saved,omitempty"`
	Dungeon  *domain.DungeonSummary `json:"dungeon,omitempty"`
}

// Session holds the village: the selected account, the ordered party and
// each member's position and hit points. It is safe for concurrent use.
//
// The session lock is never held while calling the dungeon, since the
// dungeon calls back into ReturnToStaging.
type Session struct {
	accounts Accounts
	dungeon  DungeonStarter
	rng      utils.Random

	mu       sync.Mutex
	selected string
	party    []string
	players  map[string]*Player
}

// NewSession creates an empty village. rng may be nil.
func NewSession(accounts Accounts, dungeon DungeonStarter, rng utils.Random) *Session {
	if rng == nil {
		rng = utils.GlobalRandom()
	}
	return &Session{
		accounts: accounts,
		dungeon:  dungeon,
		rng:      rng,
		players:  make(map[string]*Player),
	}
}

// Select makes pseudonym the account that village actions apply to
func (s *Session) Select(ctx context.Context, pseudonym string) error {
	if _, err := s.accounts.GetAccount(ctx, pseudonym); err != nil {
		return err
	}

	s.mu.Lock()
	s.selected = pseudonym
	s.mu.Unlock()

	logger.FromContext(ctx).Info(LogMsgAccountSelected, LogFieldPseudonym, pseudonym)
	return nil
}

// JoinParty adds the selected account to the party near the staging point.
// Joining twice is a no-op.
func (s *Session) JoinParty(ctx context.Context) (*Player, error) {
	pseudonym, err := s.selectedAccount()
	if err != nil {
		return nil, err
	}

	st, err := s.accounts.Stats(ctx, pseudonym)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.players[pseudonym]; ok {
		cp := *p
		return &cp, nil
	}

	p := &Player{
		Pseudonym: pseudonym,
		Position: clamp(domain.Point{
			X: domain.StagingPoint.X + s.jitter(),
			Y: domain.StagingPoint.Y + s.jitter(),
		}),
		HP:    st.HP,
		MaxHP: st.HP,
	}
	s.players[pseudonym] = p
	s.party = append(s.party, pseudonym)

	logger.FromContext(ctx).Info(LogMsgPartyJoined, LogFieldPseudonym, pseudonym, LogFieldPartySize, len(s.party))
	cp := *p
	return &cp, nil
}

// LeaveParty removes pseudonym from the party
func (s *Session) LeaveParty(ctx context.Context, pseudonym string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.players[pseudonym]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrNotInParty, pseudonym)
	}
	delete(s.players, pseudonym)
	for i, name := range s.party {
		if name == pseudonym {
			s.party = append(s.party[:i], s.party[i+1:]...)
			break
		}
	}

	logger.FromContext(ctx).Info(LogMsgPartyLeft, LogFieldPseudonym, pseudonym, LogFieldPartySize, len(s.party))
	return nil
}

// Move walks the selected party member dx, dy steps, staying on the map
func (s *Session) Move(_ context.Context, dx, dy int) (domain.Point, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.selected == "" {
		return domain.Point{}, domain.ErrNoAccountSelected
	}
	p, ok := s.players[s.selected]
	if !ok {
		return domain.Point{}, fmt.Errorf("%w: %s", domain.ErrNotInParty, s.selected)
	}

	p.Position = clamp(domain.Point{
		X: p.Position.X + float64(dx)*MoveStep,
		Y: p.Position.Y + float64(dy)*MoveStep,
	})
	return p.Position, nil
}

// InteractAt uses the building under pos
func (s *Session) InteractAt(ctx context.Context, pos domain.Point) (*Interaction, error) {
	b, ok := BuildingAt(pos)
	if !ok {
		return nil, fmt.Errorf("%w: (%.0f, %.0f)", domain.ErrNothingToInteract, pos.X, pos.Y)
	}
	return s.Interact(ctx, b.ID)
}

// Interact uses a building
func (s *Session) Interact(ctx context.Context, id domain.BuildingID) (*Interaction, error) {
	if _, ok := LookupBuilding(id); !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownBuilding, id)
	}

	res := &Interaction{Building: id}
	var err error
	switch id {
	case domain.BuildingForge:
		err = s.forge(ctx, res)
	case domain.BuildingBar:
		err = s.heal(ctx, res)
	case domain.BuildingHouse:
		err = s.save(ctx, res)
	case domain.BuildingDonjon:
		err = s.enterDungeon(ctx, res)
	}
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgBuildingUsed, LogFieldBuilding, id)
	return res, nil
}

// EquipItem toggles an item of the selected account. A party member's
// maximum hp follows the new equipment.
func (s *Session) EquipItem(ctx context.Context, itemID string) (*domain.Account, error) {
	pseudonym, err := s.selectedAccount()
	if err != nil {
		return nil, err
	}
	acc, err := s.accounts.ToggleEquip(ctx, pseudonym, itemID)
	if err != nil {
		return nil, err
	}

	st, err := s.accounts.Stats(ctx, pseudonym)
	if err != nil {
		return acc, nil
	}
	s.mu.Lock()
	if p, ok := s.players[pseudonym]; ok {
		p.MaxHP = st.HP
		p.HP = min(p.HP, p.MaxHP)
	}
	s.mu.Unlock()
	return acc, nil
}

// ReturnToStaging puts party members back on the staging point with the
// hit points they left the fight with
func (s *Session) ReturnToStaging(ctx context.Context, pseudonyms []string, hp map[string]int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, name := range pseudonyms {
		p, ok := s.players[name]
		if !ok {
			continue
		}
		p.Position = domain.StagingPoint
		if v, ok := hp[name]; ok {
			p.HP = max(0, min(v, p.MaxHP))
		}
	}
	logger.FromContext(ctx).Debug(LogMsgReturnedStaging, LogFieldPartySize, len(pseudonyms))
}

// Party returns the party in join order
func (s *Session) Party() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.party...)
}

// Snapshot copies the session for callers
func (s *Session) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		Selected:  s.selected,
		Party:     make([]Player, 0, len(s.party)),
		Buildings: append([]Building(nil), Buildings...),
	}
	for _, name := range s.party {
		v.Party = append(v.Party, *s.players[name])
	}
	return v
}

func (s *Session) forge(ctx context.Context, res *Interaction) error {
	pseudonym, err := s.selectedAccount()
	if err != nil {
		return err
	}
	item, err := s.accounts.Forge(ctx, pseudonym, "")
	if err != nil {
		return err
	}
	res.Forged = item
	return nil
}

// heal restores every party member to their derived maximum
func (s *Session) heal(ctx context.Context, res *Interaction) error {
	log := logger.FromContext(ctx)
	maxHP := make(map[string]int)
	for _, name := range s.Party() {
		st, err := s.accounts.Stats(ctx, name)
		if err != nil {
			log.Warn(LogMsgHealSkipped, LogFieldPseudonym, name, LogFieldError, err)
			continue
		}
		maxHP[name] = st.HP
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, name := range s.party {
		v, ok := maxHP[name]
		if !ok {
			continue
		}
		p := s.players[name]
		p.MaxHP = v
		p.HP = v
		res.Healed = append(res.Healed, name)
	}
	log.Info(LogMsgPartyHealed, LogFieldPartySize, len(res.Healed))
	return nil
}

func (s *Session) save(ctx context.Context, res *Interaction) error {
	pseudonym, err := s.selectedAccount()
	if err != nil {
		return err
	}
	if err := s.accounts.Save(ctx, pseudonym); err != nil {
		return err
	}
	res.Saved = pseudonym
	return nil
}

func (s *Session) enterDungeon(ctx context.Context, res *Interaction) error {
	party := s.Party()
	if len(party) == 0 {
		return domain.ErrEmptyParty
	}
	sum, err := s.dungeon.Start(ctx, party)
	if err != nil {
		return err
	}
	res.Dungeon = sum
	return nil
}

func (s *Session) selectedAccount() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == "" {
		return "", domain.ErrNoAccountSelected
	}
	return s.selected, nil
}

// jitter draws an offset in [-SpawnJitter, SpawnJitter)
func (s *Session) jitter() float64 {
	return s.rng.Float64()*2*SpawnJitter - SpawnJitter
}

func clamp(p domain.Point) domain.Point {
	return domain.Point{
		X: math.Max(0, math.Min(MapWidth, p.X)),
		Y: math.Max(0, math.Min(MapHeight, p.Y)),
	}
}

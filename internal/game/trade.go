package game

import "github.com/settlersonline/api/internal/board"

const maxOfferCards = 10

// BankRate returns how many cards of give the player pays for one card at the
// bank: 2 with that resource's harbor, else 3 with a generic harbor, else 4.
func (p *Player) BankRate(give board.Resource) int {
	switch {
	case p.Ports.TwoToOne[give]:
		return 2
	case p.Ports.ThreeToOne:
		return 3
	}
	return 4
}

// TradeWithBank swaps cards of give for one card of get at the player's best
// rate.
func (g *Game) TradeWithBank(pid PlayerID, give, get board.Resource) error {
	if err := g.requirePhase(PhaseMain, "trading"); err != nil {
		return err
	}
	p, err := g.requireTurn(pid)
	if err != nil {
		return err
	}
	if err := g.requireRolled(); err != nil {
		return err
	}
	if !give.Valid() || !get.Valid() {
		return reject(CodeInvalidTarget, "unknown resource")
	}
	if give == get {
		return reject(CodeInvalidInput, "you cannot trade a resource for itself")
	}
	rate := p.BankRate(give)
	if have := p.Resources.Get(give); have < rate {
		return reject(CodeInsufficientResources, "not enough %s (%d/%d)", give, have, rate)
	}

	p.Resources.Add(give, -rate)
	p.Resources.Add(get, 1)
	g.addLog("%s traded with the bank: -%d %s, +1 %s (%d:1).", p.Name, rate, give, get, rate)
	return nil
}

// NormalizeLine clamps every count to a non-negative integer.
func NormalizeLine(r Resources) Resources {
	var out Resources
	for _, res := range board.Resources {
		if n := r.Get(res); n > 0 {
			out.Set(res, n)
		}
	}
	return out
}

// CreateTradeOffer opens a peer offer from the current player. An empty to
// addresses every other player.
func (g *Game) CreateTradeOffer(pid, to PlayerID, give, get Resources) (TradeOffer, error) {
	if err := g.requirePhase(PhaseMain, "trading"); err != nil {
		return TradeOffer{}, err
	}
	from, err := g.requireTurn(pid)
	if err != nil {
		return TradeOffer{}, err
	}
	if err := g.requireRolled(); err != nil {
		return TradeOffer{}, err
	}
	if to != "" {
		if g.Player(to) == nil {
			return TradeOffer{}, reject(CodeInvalidTarget, "unknown player")
		}
		if to == pid {
			return TradeOffer{}, reject(CodeInvalidTarget, "you cannot trade with yourself")
		}
	}
	give, get = NormalizeLine(give), NormalizeLine(get)
	if give.Total() <= 0 || get.Total() <= 0 {
		return TradeOffer{}, reject(CodeInvalidInput, "an offer must give and ask for something")
	}
	if give.Total() > maxOfferCards || get.Total() > maxOfferCards {
		return TradeOffer{}, reject(CodeInvalidInput, "an offer is limited to %d cards per side", maxOfferCards)
	}
	if !from.Resources.Covers(give) {
		return TradeOffer{}, reject(CodeInsufficientResources, "you do not hold the offered cards")
	}

	offer := TradeOffer{
		ID:           g.runtime().NewID(),
		FromPlayerID: pid,
		ToPlayerID:   to,
		Give:         give,
		Get:          get,
		Status:       OfferOpen,
		At:           g.now(),
	}
	g.TradeOffers = append(g.TradeOffers, offer)
	g.addLog("%s made a trade offer.", from.Name)
	return offer, nil
}

func (g *Game) openOffer(offerID string) (*TradeOffer, error) {
	for i := range g.TradeOffers {
		if g.TradeOffers[i].ID == offerID {
			o := &g.TradeOffers[i]
			if o.Status != OfferOpen {
				return nil, reject(CodeStaleAction, "this offer is no longer open")
			}
			return o, nil
		}
	}
	return nil, reject(CodeInvalidTarget, "unknown trade offer")
}

// AcceptTradeOffer completes an open offer. It is only possible while it is
// still the creator's turn, and both hands are checked again.
func (g *Game) AcceptTradeOffer(pid PlayerID, offerID string) error {
	if err := g.requirePhase(PhaseMain, "accepting an offer"); err != nil {
		return err
	}
	to, err := g.requirePlayer(pid)
	if err != nil {
		return err
	}
	o, err := g.openOffer(offerID)
	if err != nil {
		return err
	}
	if o.ToPlayerID != "" && o.ToPlayerID != pid {
		return reject(CodeInvalidTarget, "this offer is not addressed to you")
	}
	if o.FromPlayerID == pid {
		return reject(CodeInvalidTarget, "you cannot accept your own offer")
	}
	if g.CurrentPlayerID != o.FromPlayerID {
		return reject(CodeStaleAction, "offers can only be accepted during the creator's turn")
	}
	from := g.Player(o.FromPlayerID)
	if from == nil {
		return reject(CodeInvalidTarget, "unknown player")
	}
	if !from.Resources.Covers(o.Give) {
		return reject(CodeInsufficientResources, "%s no longer holds the offered cards", from.Name)
	}
	if !to.Resources.Covers(o.Get) {
		return reject(CodeInsufficientResources, "you do not hold the requested cards")
	}

	from.Resources.Minus(o.Give)
	to.Resources.Plus(o.Give)
	to.Resources.Minus(o.Get)
	from.Resources.Plus(o.Get)
	o.Status = OfferAccepted
	o.At = g.now()
	g.addLog("%s accepted %s's offer.", to.Name, from.Name)
	return nil
}

// RejectTradeOffer declines an offer. Only the addressed player may reject a
// directed offer; an open offer may be rejected by anyone but its creator.
func (g *Game) RejectTradeOffer(pid PlayerID, offerID string) error {
	if g.Phase == PhaseFinished {
		return reject(CodeWrongPhase, "the game is over")
	}
	p, err := g.requirePlayer(pid)
	if err != nil {
		return err
	}
	o, err := g.openOffer(offerID)
	if err != nil {
		return err
	}
	if o.ToPlayerID != "" && o.ToPlayerID != pid {
		return reject(CodeInvalidTarget, "this offer is not addressed to you")
	}
	if o.FromPlayerID == pid {
		return reject(CodeInvalidTarget, "cancel your own offer instead")
	}
	o.Status = OfferRejected
	o.At = g.now()
	g.addLog("%s rejected the offer.", p.Name)
	return nil
}

// CancelTradeOffer withdraws an offer; only its creator may do so.
func (g *Game) CancelTradeOffer(pid PlayerID, offerID string) error {
	if g.Phase == PhaseFinished {
		return reject(CodeWrongPhase, "the game is over")
	}
	p, err := g.requirePlayer(pid)
	if err != nil {
		return err
	}
	o, err := g.openOffer(offerID)
	if err != nil {
		return err
	}
	if o.FromPlayerID != pid {
		return reject(CodeInvalidTarget, "only the creator can cancel an offer")
	}
	o.Status = OfferCancelled
	o.At = g.now()
	g.addLog("%s withdrew the offer.", p.Name)
	return nil
}

// pruneOffers keeps every open offer and the most recent closed ones.
func (g *Game) pruneOffers() {
	closed := 0
	for _, o := range g.TradeOffers {
		if o.Status != OfferOpen {
			closed++
		}
	}
	drop := closed - maxClosedOffers
	if drop <= 0 {
		return
	}
	kept := g.TradeOffers[:0]
	for _, o := range g.TradeOffers {
		if o.Status != OfferOpen && drop > 0 {
			drop--
			continue
		}
		kept = append(kept, o)
	}
	g.TradeOffers = kept
}

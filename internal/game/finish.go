package game

// CheckWin ends the game if any player has reached the victory point target.
// On a tie for the highest total the actor wins, then the current player,
// then the earliest seat. It reports whether the game is finished and is safe
// to call after any action.
func (g *Game) CheckWin(actor PlayerID) bool {
	if g.Phase == PhaseFinished {
		return true
	}
	if g.Phase != PhaseMain && g.Phase != PhaseSetup {
		return false
	}

	target := g.Settings.MaxVictoryPoints
	if target <= 0 {
		target = DefaultMaxVictoryPoints
	}

	best := -1
	var tied []*Player
	for _, p := range g.Players {
		if p.VictoryPoints < target {
			continue
		}
		switch {
		case p.VictoryPoints > best:
			best = p.VictoryPoints
			tied = []*Player{p}
		case p.VictoryPoints == best:
			tied = append(tied, p)
		}
	}
	if len(tied) == 0 {
		return false
	}

	winner := tied[0]
	for _, prefer := range []PlayerID{actor, g.CurrentPlayerID} {
		if w := pick(tied, prefer); w != nil {
			winner = w
			break
		}
	}

	now := g.now()
	g.Phase = PhaseFinished
	g.WinnerPlayerID = winner.ID
	g.FinishedAt = &now
	g.clearRobber()
	g.addLog("%s reached %d victory points and wins the game!", winner.Name, target)
	return true
}

func pick(players []*Player, pid PlayerID) *Player {
	if pid == "" {
		return nil
	}
	for _, p := range players {
		if p.ID == pid {
			return p
		}
	}
	return nil
}

package workflow

import (
	"sort"

	"github.com/rsawant/invest-engine/internal/domain"
)

// Effect identifies the side effect the service layer must run after a
// transition has been durably written.
type Effect int

const (
	EffectNone Effect = iota
	// EffectActivateBusiness issues user credentials and notifies the owner.
	EffectActivateBusiness
	// EffectNotifyOutcome sends the standard decision notification.
	EffectNotifyOutcome
	// EffectCloseProject settles escrow bookkeeping and notifies.
	EffectCloseProject
	// EffectPublishScheme flips the publish/active flags and materializes the
	// reference schedule.
	EffectPublishScheme
	// EffectUnpublishScheme clears the publish/active flags.
	EffectUnpublishScheme
)

// Transition is one legal edge in an entity kind's state graph
type Transition struct {
	To               domain.Status
	RequireComment   bool
	RequireChecklist bool
	Effect           Effect
}

type stateGraph map[domain.Status]map[domain.Action]Transition

// Per-kind state graphs. The five capital instruments share one decision
// graph; only the FD scheme attaches publish effects to its terminal edges.
var graphs = map[domain.EntityKind]stateGraph{
	domain.KindBusiness: {
		domain.StatusNew: {
			domain.ActionRecheck: {To: domain.StatusRecheck, RequireComment: true, Effect: EffectNotifyOutcome},
			domain.ActionReject:  {To: domain.StatusRejected, RequireComment: true, Effect: EffectNotifyOutcome},
			domain.ActionApprove: {To: domain.StatusActive, RequireChecklist: true, Effect: EffectActivateBusiness},
		},
		domain.StatusActive: {
			domain.ActionDeactivate: {To: domain.StatusInactive, RequireComment: true, Effect: EffectNotifyOutcome},
		},
		domain.StatusInactive: {
			domain.ActionReactivate: {To: domain.StatusActive, Effect: EffectNotifyOutcome},
		},
	},
	domain.KindProject: {
		domain.StatusNew:      projectDecisionEdges(),
		domain.StatusResubmit: projectDecisionEdges(),
		domain.StatusApproved: {
			domain.ActionLive: {To: domain.StatusLive},
		},
		domain.StatusLive: {
			domain.ActionClose: {To: domain.StatusClosed, RequireComment: true, Effect: EffectCloseProject},
		},
	},
	domain.KindShare:       instrumentGraph(EffectNotifyOutcome, EffectNotifyOutcome),
	domain.KindLoan:        instrumentGraph(EffectNotifyOutcome, EffectNotifyOutcome),
	domain.KindPartnership: instrumentGraph(EffectNotifyOutcome, EffectNotifyOutcome),
	domain.KindScheme:      instrumentGraph(EffectPublishScheme, EffectUnpublishScheme),
}

func projectDecisionEdges() map[domain.Action]Transition {
	return map[domain.Action]Transition{
		domain.ActionRecheck: {To: domain.StatusRecheck, RequireComment: true, Effect: EffectNotifyOutcome},
		domain.ActionReject:  {To: domain.StatusRejected, RequireComment: true, Effect: EffectNotifyOutcome},
		domain.ActionApprove: {To: domain.StatusApproved, Effect: EffectNotifyOutcome},
	}
}

func instrumentGraph(approveEffect, rejectEffect Effect) stateGraph {
	return stateGraph{
		domain.StatusPending: {
			domain.ActionRecheck: {To: domain.StatusRecheck, RequireComment: true, Effect: EffectNotifyOutcome},
			domain.ActionReject:  {To: domain.StatusRejected, RequireComment: true, Effect: rejectEffect},
			domain.ActionApprove: {To: domain.StatusApproved, Effect: approveEffect},
		},
	}
}

func lookup(kind domain.EntityKind, status domain.Status, action domain.Action) (Transition, bool) {
	graph, ok := graphs[kind]
	if !ok {
		return Transition{}, false
	}
	edges, ok := graph[status]
	if !ok {
		return Transition{}, false
	}
	t, ok := edges[action]
	return t, ok
}

// LegalActions lists the actions available from a status, sorted for stable
// output.
func LegalActions(kind domain.EntityKind, status domain.Status) []domain.Action {
	graph, ok := graphs[kind]
	if !ok {
		return nil
	}
	edges, ok := graph[status]
	if !ok {
		return nil
	}
	actions := make([]domain.Action, 0, len(edges))
	for a := range edges {
		actions = append(actions, a)
	}
	sort.Slice(actions, func(i, j int) bool { return actions[i] < actions[j] })
	return actions
}

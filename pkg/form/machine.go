package form

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"

	"github.com/goliatone/go-dynform/pkg/model"
)

const eventSelectPrefix = "select_"

// transitionFunc runs synchronously when a group enters a new branch.
type transitionFunc func(group model.ConditionalGroup, from, to model.Branch)

// branchMachine tracks which branch of one group is active. States are the
// canonical branch keys; every branch can be selected from every other one.
type branchMachine struct {
	group    model.ConditionalGroup
	branches map[string]model.Branch
	machine  *fsm.FSM
}

func newBranchMachine(group model.ConditionalGroup, initial model.Branch, onEnter transitionFunc) *branchMachine {
	m := &branchMachine{
		group:    group,
		branches: make(map[string]model.Branch, len(group.Branches)),
	}

	states := make([]string, 0, len(group.Branches))
	for _, branch := range group.Branches {
		key := model.BranchKey(branch.Value)
		m.branches[key] = branch
		states = append(states, key)
	}

	events := make(fsm.Events, 0, len(states))
	for _, state := range states {
		events = append(events, fsm.EventDesc{
			Name: eventSelectPrefix + state,
			Src:  states,
			Dst:  state,
		})
	}

	m.machine = fsm.NewFSM(
		model.BranchKey(initial.Value),
		events,
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				if onEnter != nil {
					onEnter(m.group, m.branches[e.Src], m.branches[e.Dst])
				}
			},
		},
	)
	return m
}

// Current returns the active branch.
func (m *branchMachine) Current() model.Branch {
	return m.branches[m.machine.Current()]
}

// Select moves the machine to branch. Selecting the current branch is a
// no-op and reports false; looplab/fsm treats self-transitions as errors so
// the state is checked first.
func (m *branchMachine) Select(ctx context.Context, branch model.Branch) (bool, error) {
	key := model.BranchKey(branch.Value)
	if m.machine.Current() == key {
		return false, nil
	}
	if _, ok := m.branches[key]; !ok {
		return false, fmt.Errorf("form: group %q has no branch %q", m.group.Name, key)
	}
	if err := m.machine.Event(ctx, eventSelectPrefix+key); err != nil {
		return false, fmt.Errorf("form: group %q select %q: %w", m.group.Name, key, err)
	}
	return true, nil
}

package queries

import (
	"context"
	"sort"
	"strings"

	"github.com/HarjjotSinghh/openwave-sub002/contexts/hackathon-governance/voting-engine/domain/entities"
	"github.com/HarjjotSinghh/openwave-sub002/contexts/hackathon-governance/voting-engine/ports"
)

type TallyUseCase struct {
	Votes ports.VoteRepository
}

func (uc TallyUseCase) ProjectTally(ctx context.Context, projectID string) (entities.Tally, error) {
	votes, err := uc.Votes.ListVotesByProject(ctx, strings.TrimSpace(projectID))
	if err != nil {
		return entities.Tally{}, err
	}
	tally := entities.Tally{ProjectID: strings.TrimSpace(projectID)}
	for _, vote := range votes {
		count(&tally, vote)
	}
	return tally, nil
}

func (uc TallyUseCase) HackathonTallies(ctx context.Context, hackathonID string) ([]entities.Tally, error) {
	votes, err := uc.Votes.ListVotesByHackathon(ctx, strings.TrimSpace(hackathonID))
	if err != nil {
		return nil, err
	}

	byProject := make(map[string]entities.Tally)
	for _, vote := range votes {
		tally := byProject[vote.ProjectID]
		tally.ProjectID = vote.ProjectID
		count(&tally, vote)
		byProject[vote.ProjectID] = tally
	}

	items := make([]entities.Tally, 0, len(byProject))
	for _, tally := range byProject {
		items = append(items, tally)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].SupportVotes == items[j].SupportVotes {
			return items[i].ProjectID < items[j].ProjectID
		}
		return items[i].SupportVotes > items[j].SupportVotes
	})
	return items, nil
}

func count(tally *entities.Tally, vote entities.Vote) {
	tally.HackathonID = vote.HackathonID
	tally.TotalVotes++
	if vote.Kind == entities.VoteKindSupport {
		tally.SupportVotes++
	} else if vote.Kind == entities.VoteKindOppose {
		tally.OpposeVotes++
	}
	if vote.Role == entities.VoterRoleContributor {
		tally.ContributorVotes++
	} else if vote.Role == entities.VoterRoleMaintainer {
		tally.MaintainerVotes++
	}
}

package models

// ManuscriptStatus is the lifecycle state of a manuscript.
type ManuscriptStatus string

const (
	ManuscriptDraft             ManuscriptStatus = "DRAFT"
	ManuscriptSubmitted         ManuscriptStatus = "SUBMITTED"
	ManuscriptUnderReview       ManuscriptStatus = "UNDER_REVIEW"
	ManuscriptRevisionRequested ManuscriptStatus = "REVISION_REQUESTED"
	ManuscriptAccepted          ManuscriptStatus = "ACCEPTED"
	ManuscriptRejected          ManuscriptStatus = "REJECTED"
	ManuscriptPublished         ManuscriptStatus = "PUBLISHED"
)

// ReviewDecision is a reviewer's verdict on a manuscript.
type ReviewDecision string

const (
	DecisionPending ReviewDecision = "PENDING"
	DecisionAccept  ReviewDecision = "ACCEPT"
	DecisionReject  ReviewDecision = "REJECT"
	DecisionRevise  ReviewDecision = "REVISE"
)

// IssueStatus is the lifecycle state of an issue.
type IssueStatus string

const (
	IssueDraft     IssueStatus = "DRAFT"
	IssuePublished IssueStatus = "PUBLISHED"
	IssueArchived  IssueStatus = "ARCHIVED"
)

// manuscriptTransitions is the authority over editor-driven status changes.
// The review decision path writes its mapped status directly: last decision
// wins there, and a transition check would forbid a later reviewer
// overturning an earlier verdict.
var manuscriptTransitions = map[ManuscriptStatus][]ManuscriptStatus{
	ManuscriptDraft:             {ManuscriptSubmitted},
	ManuscriptSubmitted:         {ManuscriptUnderReview, ManuscriptRejected},
	ManuscriptUnderReview:       {ManuscriptAccepted, ManuscriptRejected, ManuscriptRevisionRequested},
	ManuscriptRevisionRequested: {ManuscriptSubmitted, ManuscriptUnderReview},
	ManuscriptAccepted:          {ManuscriptPublished},
	ManuscriptRejected:          {},
	ManuscriptPublished:         {},
}

// ValidManuscriptStatus reports whether s is a known status value.
func ValidManuscriptStatus(s ManuscriptStatus) bool {
	_, ok := manuscriptTransitions[s]
	return ok
}

// CanTransition reports whether a manuscript may move from one status to
// another. Self-transitions are rejected.
func CanTransition(from, to ManuscriptStatus) bool {
	for _, next := range manuscriptTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// DecisionStatus maps a review decision to the manuscript status it implies.
// PENDING and unrecognized decisions map to nothing: the review is recorded
// but the manuscript is left untouched.
func DecisionStatus(d ReviewDecision) (ManuscriptStatus, bool) {
	switch d {
	case DecisionAccept:
		return ManuscriptAccepted, true
	case DecisionReject:
		return ManuscriptRejected, true
	case DecisionRevise:
		return ManuscriptRevisionRequested, true
	default:
		return "", false
	}
}

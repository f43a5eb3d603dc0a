package services

// ActorKind distinguishes the two authenticated actor types.
type ActorKind string

const (
	ActorMember  ActorKind = "member"
	ActorCompany ActorKind = "company"
)

// TokenSvcFacade issues signed bearer tokens for authenticated actors.
type TokenSvcFacade interface {
	// IssueToken signs a token whose subject is the actor id and whose
	// kind claim distinguishes members from companies.
	IssueToken(actorID string, kind ActorKind) (string, error)
}

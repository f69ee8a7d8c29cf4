package repo

import "github.com/eklavyac/gogit/pkg/object"

// fixedAuthor and fixedCommitter are literal constants supplied to every
// commit this core writes. spec.md §9 open question (a) leaves this
// intentional-or-provisional distinction unresolved; this core treats it
// as intentional and uses one fixed identity rather than reading the
// environment.
const (
	fixedAuthor    = "gogit <gogit@localhost> 0 +0000"
	fixedCommitter = "gogit <gogit@localhost> 0 +0000"
)

// WriteCommit writes a Commit object pointing at treeHash with the given
// parents and message, using the fixed author/committer identity.
func (r *Repo) WriteCommit(treeHash object.Hash, parents []object.Hash, message string) (object.Hash, error) {
	c := &object.CommitObj{
		TreeHash:  treeHash,
		Parents:   parents,
		Author:    fixedAuthor,
		Committer: fixedCommitter,
		Message:   message,
	}
	return r.Store.WriteCommit(c)
}

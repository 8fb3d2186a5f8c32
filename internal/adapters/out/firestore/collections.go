// internal/adapters/out/firestore/collections.go
package firestore

import "cloud.google.com/go/firestore"

// Collection names follow the original document layout (singular).
const (
	userCollection    = "user"
	shopCollection    = "shop"
	voucherCollection = "voucher"
)

func refIDs(refs []*firestore.DocumentRef) []string {
	ids := make([]string, 0, len(refs))
	for _, r := range refs {
		if r != nil {
			ids = append(ids, r.ID)
		}
	}
	return ids
}

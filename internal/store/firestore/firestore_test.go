package firestore

import (
	"context"
	"os"
	"testing"

	"cloud.google.com/go/firestore"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/iterator"

	"github.com/sredowan/uhud-builders-new/internal/store"
	"github.com/sredowan/uhud-builders-new/internal/store/storetest"
)

// TestFirestoreStoreContract runs the shared contract suite against the
// Firestore emulator. Set FIRESTORE_EMULATOR_HOST to enable, e.g.
// localhost:8200 (the client library picks the variable up automatically).
func TestFirestoreStoreContract(t *testing.T) {
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}

	ctx := context.Background()
	client, err := firestore.NewClient(ctx, "uhud-builders-test")
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	storetest.RunSuite(t, func(t *testing.T) store.Store {
		clearCollections(t, client)
		return noClose{NewWithClient(client)}
	})
}

func clearCollections(t *testing.T, client *firestore.Client) {
	t.Helper()
	ctx := context.Background()
	for _, name := range []string{projectsCollection, galleryCollection, messagesCollection, settingsCollection} {
		iter := client.Collection(name).Documents(ctx)
		for {
			doc, err := iter.Next()
			if err == iterator.Done {
				break
			}
			require.NoError(t, err)
			_, err = doc.Ref.Delete(ctx)
			require.NoError(t, err)
		}
		iter.Stop()
	}
}

// noClose keeps the shared client open across suite cases
type noClose struct {
	*Store
}

func (noClose) Close() {}

package usecases

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"mentesana-server/apperr"
	"mentesana-server/auth"
	"mentesana-server/db"
	"mentesana-server/entities"
)

var txModes = []struct {
	name   string
	native bool
}{
	{"native", true},
	{"compensating", false},
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []entities.Event
}

func (n *recordingNotifier) Notify(userID int64, event entities.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	event.UserID = userID
	n.events = append(n.events, event)
}

type fixture struct {
	db       db.Database
	notifier *recordingNotifier
	auth     *AuthUseCase
}

func newFixture(t *testing.T, native bool) *fixture {
	t.Helper()
	database, err := db.OpenEmbedded(filepath.Join(t.TempDir(), "usecases.db"), db.Options{LogLevel: "silent", NativeTx: native})
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	require.NoError(t, db.InitSchema(context.Background(), database))

	return &fixture{
		db:       database,
		notifier: &recordingNotifier{},
		auth:     NewAuthUseCase(database, auth.NewTokenIssuer("test-secret", 30*24*time.Hour), &auth.Hasher{Cost: bcrypt.MinCost}),
	}
}

func (f *fixture) register(t *testing.T, email string) *entities.User {
	t.Helper()
	res, err := f.auth.Register(context.Background(), RegisterInput{Nombre: "Ana", Correo: email, Contrasena: "s3creto"})
	require.NoError(t, err)
	return res.User
}

func (f *fixture) points(t *testing.T, userID int64) int {
	t.Helper()
	row, err := f.db.QueryOne(context.Background(), "SELECT Puntos FROM Usuarios WHERE IdUsuario = @id", db.Params{"id": userID})
	require.NoError(t, err)
	return row.Int("Puntos")
}

func (f *fixture) count(t *testing.T, query string, params db.Params) int64 {
	t.Helper()
	row, err := f.db.QueryOne(context.Background(), query, params)
	require.NoError(t, err)
	return row.Int64("total")
}

func assertKind(t *testing.T, kind apperr.Kind, err error) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, kind, apperr.KindOf(err), "error: %v", err)
}

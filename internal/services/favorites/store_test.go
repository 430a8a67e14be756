package favorites_test

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/navein97/weather-app/internal/errs"
	"github.com/navein97/weather-app/internal/models"
	"github.com/navein97/weather-app/internal/repository/sqlite"
	"github.com/navein97/weather-app/internal/services/favorites"
)

type mockWeather struct {
	mock.Mock
}

func (m *mockWeather) GetCurrentByCity(ctx context.Context, city string) (models.WeatherSnapshot, error) {
	args := m.Called(ctx, city)
	data, _ := args.Get(0).(models.WeatherSnapshot)
	return data, args.Error(1)
}

type memoryKV struct {
	mu      sync.Mutex
	data    map[string]string
	writes  int
	failGet error
	failSet error
}

func newMemoryKV() *memoryKV {
	return &memoryKV{data: map[string]string{}}
}

func (m *memoryKV) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failGet != nil {
		return "", false, m.failGet
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memoryKV) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSet != nil {
		return m.failSet
	}
	m.writes++
	m.data[key] = value
	return nil
}

func knownCities(cities ...string) *mockWeather {
	w := &mockWeather{}
	for _, c := range cities {
		w.On("GetCurrentByCity", mock.Anything, c).Return(models.WeatherSnapshot{City: c}, nil)
	}
	return w
}

func TestStore_AddThenIsSaved(t *testing.T) {
	kv := newMemoryKV()
	s := favorites.NewStore(kv, knownCities("Paris"), zerolog.Nop())

	require.NoError(t, s.Add(context.Background(), "Paris"))

	assert.True(t, s.IsSaved("Paris"))
	assert.Equal(t, []string{"Paris"}, s.List())
	assert.JSONEq(t, `["Paris"]`, kv.data[favorites.StorageKey])
	assert.Nil(t, s.Err())
}

func TestStore_PersistedListSurvivesReload(t *testing.T) {
	ctx := context.Background()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "weather.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	kv := sqlite.NewKVStore(db, zerolog.Nop())

	s := favorites.NewStore(kv, knownCities("Paris", "Lviv"), zerolog.Nop())
	require.NoError(t, s.Add(ctx, "Paris"))
	require.NoError(t, s.Add(ctx, "Lviv"))

	reloaded := favorites.NewStore(kv, &mockWeather{}, zerolog.Nop())
	reloaded.Load(ctx)

	assert.Equal(t, []string{"Paris", "Lviv"}, reloaded.List())
	assert.Nil(t, reloaded.Err())
}

func TestStore_AddTwiceKeepsOneEntry(t *testing.T) {
	kv := newMemoryKV()
	s := favorites.NewStore(kv, knownCities("Paris"), zerolog.Nop())

	require.NoError(t, s.Add(context.Background(), "Paris"))
	require.NoError(t, s.Add(context.Background(), "Paris"))

	assert.Equal(t, []string{"Paris"}, s.List())
	assert.Equal(t, 1, kv.writes)
}

func TestStore_AddUnknownCityLeavesListUnchanged(t *testing.T) {
	kv := newMemoryKV()
	w := knownCities("Paris")
	w.On("GetCurrentByCity", mock.Anything, "Atlantis").
		Return(models.WeatherSnapshot{}, &errs.StatusError{Op: "current_by_city", Code: http.StatusNotFound, Err: errs.ErrNotFound})
	s := favorites.NewStore(kv, w, zerolog.Nop())
	require.NoError(t, s.Add(context.Background(), "Paris"))

	err := s.Add(context.Background(), "Atlantis")

	require.Error(t, err)
	sig := errs.Classify(err)
	assert.Equal(t, errs.KindNotFound, sig.Kind)
	assert.Equal(t, "City not found", sig.Message)
	assert.Equal(t, sig, s.Err())
	assert.Equal(t, []string{"Paris"}, s.List())
	assert.Equal(t, 1, kv.writes)
}

func TestStore_AddWhileOffline(t *testing.T) {
	w := &mockWeather{}
	w.On("GetCurrentByCity", mock.Anything, "Paris").Return(models.WeatherSnapshot{}, errs.ErrNetwork)
	s := favorites.NewStore(newMemoryKV(), w, zerolog.Nop())

	err := s.Add(context.Background(), "Paris")

	require.Error(t, err)
	assert.Equal(t, errs.SeverityWarning, errs.Classify(err).Severity)
	assert.Empty(t, s.List())
}

func TestStore_AddBlankNameMakesNoCall(t *testing.T) {
	w := &mockWeather{}
	s := favorites.NewStore(newMemoryKV(), w, zerolog.Nop())

	err := s.Add(context.Background(), "   ")

	require.Error(t, err)
	assert.Equal(t, errs.KindNotFound, errs.Classify(err).Kind)
	w.AssertNotCalled(t, "GetCurrentByCity", mock.Anything, mock.Anything)
}

func TestStore_AddPersistFailureRollsBack(t *testing.T) {
	kv := newMemoryKV()
	kv.failSet = errors.New("database is locked")
	s := favorites.NewStore(kv, knownCities("Paris"), zerolog.Nop())

	err := s.Add(context.Background(), "Paris")

	require.Error(t, err)
	assert.Equal(t, errs.KindUnexpected, errs.Classify(err).Kind)
	assert.False(t, s.IsSaved("Paris"))
	assert.Empty(t, s.List())
}

func TestStore_Remove(t *testing.T) {
	kv := newMemoryKV()
	s := favorites.NewStore(kv, knownCities("Paris", "Lviv"), zerolog.Nop())
	require.NoError(t, s.Add(context.Background(), "Paris"))
	require.NoError(t, s.Add(context.Background(), "Lviv"))

	require.NoError(t, s.Remove(context.Background(), "Paris"))

	assert.False(t, s.IsSaved("Paris"))
	assert.Equal(t, []string{"Lviv"}, s.List())
	assert.JSONEq(t, `["Lviv"]`, kv.data[favorites.StorageKey])
}

func TestStore_RemoveMissingIsNoop(t *testing.T) {
	kv := newMemoryKV()
	s := favorites.NewStore(kv, knownCities("Paris"), zerolog.Nop())
	require.NoError(t, s.Add(context.Background(), "Paris"))

	require.NoError(t, s.Remove(context.Background(), "Rome"))

	assert.Equal(t, []string{"Paris"}, s.List())
	assert.Equal(t, 1, kv.writes)
}

func TestStore_RemoveTwiceMatchesRemoveOnce(t *testing.T) {
	kv := newMemoryKV()
	s := favorites.NewStore(kv, knownCities("Paris", "Lviv"), zerolog.Nop())
	require.NoError(t, s.Add(context.Background(), "Paris"))
	require.NoError(t, s.Add(context.Background(), "Lviv"))

	require.NoError(t, s.Remove(context.Background(), "Paris"))
	afterOnce := s.List()
	writesAfterOnce := kv.writes

	require.NoError(t, s.Remove(context.Background(), "Paris"))

	assert.Equal(t, afterOnce, s.List())
	assert.Equal(t, []string{"Lviv"}, s.List())
	assert.Equal(t, writesAfterOnce, kv.writes)
	assert.JSONEq(t, `["Lviv"]`, kv.data[favorites.StorageKey])
}

func TestStore_PaddedNameIsTrimmedEverywhere(t *testing.T) {
	kv := newMemoryKV()
	s := favorites.NewStore(kv, knownCities("Paris"), zerolog.Nop())

	require.NoError(t, s.Add(context.Background(), " Paris "))

	assert.Equal(t, []string{"Paris"}, s.List())
	assert.True(t, s.IsSaved(" Paris "))
	assert.True(t, s.IsSaved("Paris"))

	require.NoError(t, s.Remove(context.Background(), " Paris "))

	assert.False(t, s.IsSaved("Paris"))
	assert.Empty(t, s.List())
	assert.JSONEq(t, `[]`, kv.data[favorites.StorageKey])
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "Paris", favorites.Normalize("\t Paris \n"))
	assert.Equal(t, "New York", favorites.Normalize("New York"))
	assert.Empty(t, favorites.Normalize("   "))
}

func TestStore_RemovePersistFailureRollsBack(t *testing.T) {
	kv := newMemoryKV()
	s := favorites.NewStore(kv, knownCities("Paris"), zerolog.Nop())
	require.NoError(t, s.Add(context.Background(), "Paris"))

	kv.failSet = errors.New("read-only file system")
	err := s.Remove(context.Background(), "Paris")

	require.Error(t, err)
	assert.True(t, s.IsSaved("Paris"))
	assert.NotNil(t, s.Err())
}

func TestStore_LoadSwallowsCorruptData(t *testing.T) {
	kv := newMemoryKV()
	kv.data[favorites.StorageKey] = `{"oops"`
	s := favorites.NewStore(kv, &mockWeather{}, zerolog.Nop())

	s.Load(context.Background())

	assert.Empty(t, s.List())
	require.NotNil(t, s.Err())
	assert.Equal(t, errs.MsgUnexpectedFailed, s.Err().Message)
}

func TestStore_LoadSwallowsStorageFailure(t *testing.T) {
	kv := newMemoryKV()
	kv.failGet = errors.New("disk I/O error")
	s := favorites.NewStore(kv, &mockWeather{}, zerolog.Nop())

	s.Load(context.Background())

	assert.Empty(t, s.List())
	assert.NotNil(t, s.Err())
}

func TestStore_ListReturnsCopy(t *testing.T) {
	s := favorites.NewStore(newMemoryKV(), knownCities("Paris"), zerolog.Nop())
	require.NoError(t, s.Add(context.Background(), "Paris"))

	list := s.List()
	list[0] = "Berlin"

	assert.Equal(t, []string{"Paris"}, s.List())
}

func TestStore_ConcurrentAddsKeepEveryCity(t *testing.T) {
	cities := []string{"Paris", "Lviv", "Kyiv", "Rome", "Oslo", "Riga", "Lima", "Bern"}
	kv := newMemoryKV()
	s := favorites.NewStore(kv, knownCities(cities...), zerolog.Nop())

	var wg sync.WaitGroup
	for _, c := range cities {
		c := c
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.Add(context.Background(), c))
		}()
	}
	wg.Wait()

	assert.ElementsMatch(t, cities, s.List())

	reloaded := favorites.NewStore(kv, &mockWeather{}, zerolog.Nop())
	reloaded.Load(context.Background())
	assert.ElementsMatch(t, cities, reloaded.List())
}

package profile_service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Inovare-Grupo-8/portal-assistencia/internal/adapters/out/cache"
	"github.com/Inovare-Grupo-8/portal-assistencia/internal/adapters/out/logger"
	"github.com/Inovare-Grupo-8/portal-assistencia/internal/config"
	"github.com/Inovare-Grupo-8/portal-assistencia/internal/core/domain"
)

var (
	testUser       = domain.UserKey{Role: domain.RoleAssistido, UserID: 7}
	testVolunteer  = domain.UserKey{Role: domain.RoleVoluntario, UserID: 8}
	testNow        = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	errBackendDown = errors.New("backend down")
)

func sampleProfile() domain.ProfileFormData {
	return domain.ProfileFormData{
		Personal: domain.PersonalData{
			Nome:           "Maria",
			Sobrenome:      "Silva",
			Email:          "maria@example.com",
			Telefone:       "(11) 98765-4321",
			DataNascimento: "1990-05-20",
			Genero:         "FEMININO",
		},
		Professional: domain.ProfessionalData{
			Crp:           "06/123456",
			Especialidade: "Psicologia",
		},
		FotoURL: "https://cdn.example.com/old.png",
	}
}

type fakeProfilePort struct {
	mu sync.Mutex

	profile    domain.ProfileFormData
	address    domain.AddressData
	getErr     error
	addressErr error
	updateErr  error

	// When set, updates announce themselves on started and wait for release
	started chan struct{}
	release chan struct{}

	personalResponse *domain.PersonalData
	photoURL         string

	updateCalls int
	sent        []interface{}
}

func (f *fakeProfilePort) GetProfile(ctx context.Context, user domain.UserKey) (*domain.ProfileFormData, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	profile := f.profile.Clone()
	return &profile, nil
}

func (f *fakeProfilePort) GetAddress(ctx context.Context, user domain.UserKey) (*domain.AddressData, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.addressErr != nil {
		return nil, f.addressErr
	}
	address := f.address
	return &address, nil
}

func (f *fakeProfilePort) update(data interface{}) error {
	if f.started != nil {
		f.started <- struct{}{}
		<-f.release
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls++
	f.sent = append(f.sent, data)
	return f.updateErr
}

func (f *fakeProfilePort) UpdatePersonal(ctx context.Context, user domain.UserKey, data domain.PersonalData) (*domain.PersonalData, error) {
	if err := f.update(data); err != nil {
		return nil, err
	}
	if f.personalResponse != nil {
		return f.personalResponse, nil
	}
	return &data, nil
}

func (f *fakeProfilePort) UpdateProfessional(ctx context.Context, user domain.UserKey, data domain.ProfessionalData) (*domain.ProfessionalData, error) {
	if err := f.update(data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (f *fakeProfilePort) UpdateAddress(ctx context.Context, user domain.UserKey, data domain.AddressData) (*domain.AddressData, error) {
	if err := f.update(data); err != nil {
		return nil, err
	}
	// The backend answers with a partial address
	return &domain.AddressData{Numero: data.Numero, Cep: data.Cep}, nil
}

func (f *fakeProfilePort) UploadPhoto(ctx context.Context, user domain.UserKey, photo domain.PhotoUpload) (string, error) {
	if err := f.update(photo); err != nil {
		return "", err
	}
	return f.photoURL, nil
}

func (f *fakeProfilePort) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.updateCalls
}

type fakePostalCodePort struct {
	mu        sync.Mutex
	addresses map[string]domain.PostalAddress
	err       error
	calls     int
}

func (f *fakePostalCodePort) LookupPostalCode(ctx context.Context, cep string) (*domain.PostalAddress, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	address, ok := f.addresses[cep]
	if !ok {
		return nil, domain.ErrPostalCodeNotFound
	}
	return &address, nil
}

type fakeStorage struct {
	mu    sync.Mutex
	items map[string]string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{items: make(map[string]string)}
}

func (f *fakeStorage) GetItem(ctx context.Context, user domain.UserKey, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	value, ok := f.items[user.String()+":"+key]
	return value, ok, nil
}

func (f *fakeStorage) SetItem(ctx context.Context, user domain.UserKey, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[user.String()+":"+key] = value
	return nil
}

func (f *fakeStorage) RemoveItems(ctx context.Context, user domain.UserKey, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, key := range keys {
		delete(f.items, user.String()+":"+key)
	}
	return nil
}

func (f *fakeStorage) has(user domain.UserKey, key string) bool {
	_, ok, _ := f.GetItem(context.Background(), user, key)
	return ok
}

type testEnv struct {
	service  *ProfileService
	profiles *fakeProfilePort
	postal   *fakePostalCodePort
	storage  *fakeStorage
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{}
	cfg.Cache.Enabled = true
	cfg.Cache.HistorySize = 10
	cfg.Cache.ProfileSize = 10
	cfg.Cache.CepSize = 10
	cfg.Cache.CepTTL = time.Hour
	cfg.Photo.MaxBytes = 1024

	log := logger.NewZapLogger(zap.NewNop())
	cacheAdapter, err := cache.NewCacheAdapter(cfg, log)
	require.NoError(t, err)

	env := &testEnv{
		profiles: &fakeProfilePort{
			profile:  sampleProfile(),
			address:  domain.AddressData{Rua: "Rua A", Numero: "10", Bairro: "Centro", Cidade: "São Paulo", Estado: "SP", Cep: "01234-567"},
			photoURL: "https://cdn.example.com/new.png",
		},
		postal: &fakePostalCodePort{addresses: map[string]domain.PostalAddress{
			"01310100": {Cep: "01310-100", Rua: "Avenida Paulista", Bairro: "Bela Vista", Cidade: "São Paulo", Estado: "SP"},
		}},
		storage: newFakeStorage(),
	}
	env.service = NewProfileService(env.profiles, env.postal, cacheAdapter, env.storage, cfg, log).
		WithClock(func() time.Time { return testNow })
	return env
}

func (e *testEnv) load(t *testing.T, user domain.UserKey) *domain.ProfileResult {
	t.Helper()
	result, err := e.service.LoadProfile(context.Background(), user, false)
	require.NoError(t, err)
	return result
}

func (e *testEnv) edit(t *testing.T, user domain.UserKey, fields map[string]string) *domain.ProfileSnapshot {
	t.Helper()
	form, err := e.service.EditFields(context.Background(), user, fields)
	require.NoError(t, err)
	return form
}

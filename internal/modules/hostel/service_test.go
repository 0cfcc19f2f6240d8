package hostel

import (
	"context"
	"errors"
	"testing"

	"hostelfinder/internal/domain"
	"hostelfinder/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type mockHostelRepo struct {
	mock.Mock
}

func (m *mockHostelRepo) Create(ctx context.Context, h *domain.Hostel, amenityNames []string) error {
	args := m.Called(ctx, h, amenityNames)
	return args.Error(0)
}

func (m *mockHostelRepo) List(ctx context.Context, skip, limit int) ([]domain.Hostel, error) {
	args := m.Called(ctx, skip, limit)
	return args.Get(0).([]domain.Hostel), args.Error(1)
}

func (m *mockHostelRepo) GetByID(ctx context.Context, id int64) (*domain.Hostel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Hostel), args.Error(1)
}

func (m *mockHostelRepo) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockHostelRepo) FindByPincode(ctx context.Context, pincode string) ([]domain.Hostel, error) {
	args := m.Called(ctx, pincode)
	return args.Get(0).([]domain.Hostel), args.Error(1)
}

func (m *mockHostelRepo) FindByCity(ctx context.Context, city string) ([]domain.Hostel, error) {
	args := m.Called(ctx, city)
	return args.Get(0).([]domain.Hostel), args.Error(1)
}

func (m *mockHostelRepo) Search(ctx context.Context, f repository.HostelFilter) ([]domain.Hostel, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]domain.Hostel), args.Error(1)
}

func (m *mockHostelRepo) AddImage(ctx context.Context, img *domain.HostelImage) error {
	args := m.Called(ctx, img)
	return args.Error(0)
}

type mockReviews struct {
	mock.Mock
}

func (m *mockReviews) ListByHostel(ctx context.Context, hostelID int64, skip, limit int) ([]domain.Review, error) {
	args := m.Called(ctx, hostelID, skip, limit)
	return args.Get(0).([]domain.Review), args.Error(1)
}

type mockUsers struct {
	mock.Mock
}

func (m *mockUsers) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type mockLocations struct {
	mock.Mock
}

func (m *mockLocations) SimilarLocations(ctx context.Context, pincode string) ([]string, error) {
	args := m.Called(ctx, pincode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type fixture struct {
	hostels   *mockHostelRepo
	reviews   *mockReviews
	users     *mockUsers
	locations *mockLocations
	svc       *Service
}

func newFixture() *fixture {
	f := &fixture{
		hostels:   new(mockHostelRepo),
		reviews:   new(mockReviews),
		users:     new(mockUsers),
		locations: new(mockLocations),
	}
	f.svc = NewService(f.hostels, f.reviews, f.users, f.locations)
	return f
}

func TestSmartSearch_ExactMatchSkipsRecommender(t *testing.T) {
	f := newFixture()
	direct := []domain.Hostel{{ID: 1, Pincode: "411001"}, {ID: 2, Pincode: "411001"}}
	f.hostels.On("FindByPincode", mock.Anything, "411001").Return(direct, nil)

	res, err := f.svc.SmartSearch(context.Background(), "411001")
	require.NoError(t, err)

	assert.True(t, res.ExactMatch)
	assert.Equal(t, "411001", res.SearchedPincode)
	assert.Equal(t, direct, res.DirectResults)
	assert.Empty(t, res.SuggestedResults)
	assert.NotNil(t, res.SuggestedLocations)
	assert.Empty(t, res.AISuggestion)
	f.locations.AssertNotCalled(t, "SimilarLocations", mock.Anything, mock.Anything)
}

func TestSmartSearch_MissUsesSimilarLocationsOnce(t *testing.T) {
	f := newFixture()
	f.hostels.On("FindByPincode", mock.Anything, "999999").Return([]domain.Hostel{}, nil)
	f.locations.On("SimilarLocations", mock.Anything, "999999").Return([]string{"Pune", "Mumbai", "Pune"}, nil)
	f.hostels.On("FindByCity", mock.Anything, "Pune").Return([]domain.Hostel{{ID: 10, City: "Pune"}}, nil)
	f.hostels.On("FindByCity", mock.Anything, "Mumbai").Return([]domain.Hostel{{ID: 20, City: "Mumbai"}}, nil)

	res, err := f.svc.SmartSearch(context.Background(), "999999")
	require.NoError(t, err)

	assert.False(t, res.ExactMatch)
	assert.Empty(t, res.DirectResults)
	assert.Equal(t, []string{"Pune", "Mumbai", "Pune"}, res.SuggestedLocations)

	ids := make([]int64, 0, len(res.SuggestedResults))
	for _, h := range res.SuggestedResults {
		ids = append(ids, h.ID)
	}
	assert.Equal(t, []int64{10, 20, 10}, ids)
	assert.Equal(t,
		"No hostels found in pincode 999999. Here are some suggestions from nearby areas: Pune, Mumbai, Pune",
		res.AISuggestion)
	f.locations.AssertNumberOfCalls(t, "SimilarLocations", 1)
}

func TestSmartSearch_RecommenderFailure(t *testing.T) {
	f := newFixture()
	f.hostels.On("FindByPincode", mock.Anything, "1").Return([]domain.Hostel{}, nil)
	upstream := errors.New("recommendation service error")
	f.locations.On("SimilarLocations", mock.Anything, "1").Return(nil, upstream)

	_, err := f.svc.SmartSearch(context.Background(), "1")
	assert.ErrorIs(t, err, upstream)
	f.hostels.AssertNotCalled(t, "FindByCity", mock.Anything, mock.Anything)
}

func TestCreate_OwnerAlwaysOwnsListing(t *testing.T) {
	f := newFixture()
	other := int64(99)
	req := CreateHostelRequest{Name: "Sunrise", Location: "MG Road", City: "Pune", Rent: 5000, AvailableRooms: 4,
		Amenities: []string{"wifi"}, Images: []string{"https://img.example.com/1.jpg"}, OwnerID: &other}

	f.hostels.On("Create", mock.Anything, mock.MatchedBy(func(h *domain.Hostel) bool {
		return h.OwnerID == 5 && len(h.Images) == 1
	}), []string{"wifi"}).Return(nil)

	h, err := f.svc.Create(context.Background(), Actor{UserID: 5, Role: domain.UserOwner}, req)
	require.NoError(t, err)
	assert.Equal(t, int64(5), h.OwnerID)
	f.users.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestCreate_AdminMayAssignOwner(t *testing.T) {
	f := newFixture()
	owner := int64(7)
	req := CreateHostelRequest{Name: "Sunrise", Location: "MG Road", City: "Pune", Rent: 5000, OwnerID: &owner}

	f.users.On("GetByID", mock.Anything, owner).Return(&domain.User{ID: owner, UserType: domain.UserOwner}, nil)
	f.hostels.On("Create", mock.Anything, mock.MatchedBy(func(h *domain.Hostel) bool { return h.OwnerID == owner }), mock.Anything).Return(nil)

	h, err := f.svc.Create(context.Background(), Actor{UserID: 1, Role: domain.UserAdmin}, req)
	require.NoError(t, err)
	assert.Equal(t, owner, h.OwnerID)
	assert.NotNil(t, h.Amenities)
}

func TestCreate_AdminUnknownOwner(t *testing.T) {
	f := newFixture()
	owner := int64(404)
	f.users.On("GetByID", mock.Anything, owner).Return(nil, gorm.ErrRecordNotFound)

	_, err := f.svc.Create(context.Background(), Actor{UserID: 1, Role: domain.UserAdmin},
		CreateHostelRequest{Name: "Sunrise", Location: "x", City: "Pune", Rent: 1, OwnerID: &owner})
	assert.ErrorIs(t, err, ErrOwnerNotFound)
}

func TestCreate_SeekerForbidden(t *testing.T) {
	f := newFixture()
	_, err := f.svc.Create(context.Background(), Actor{UserID: 3, Role: domain.UserSeeker}, CreateHostelRequest{})
	assert.ErrorIs(t, err, ErrForbidden)
	f.hostels.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestGet_NotFound(t *testing.T) {
	f := newFixture()
	f.hostels.On("GetByID", mock.Anything, int64(8)).Return(nil, gorm.ErrRecordNotFound)

	_, err := f.svc.Get(context.Background(), 8)
	assert.ErrorIs(t, err, ErrHostelNotFound)
}

func TestAddImage_OnlyOwnerOrAdmin(t *testing.T) {
	f := newFixture()
	f.hostels.On("GetByID", mock.Anything, int64(2)).Return(&domain.Hostel{ID: 2, OwnerID: 5}, nil)
	f.hostels.On("AddImage", mock.Anything, mock.Anything).Return(nil)
	req := AddImageRequest{ImageURL: "https://img.example.com/2.jpg"}

	_, err := f.svc.AddImage(context.Background(), Actor{UserID: 6, Role: domain.UserOwner}, 2, req)
	assert.ErrorIs(t, err, ErrForbidden)

	img, err := f.svc.AddImage(context.Background(), Actor{UserID: 5, Role: domain.UserOwner}, 2, req)
	require.NoError(t, err)
	assert.Equal(t, int64(2), img.HostelID)

	_, err = f.svc.AddImage(context.Background(), Actor{UserID: 1, Role: domain.UserAdmin}, 2, req)
	require.NoError(t, err)
	f.hostels.AssertNumberOfCalls(t, "AddImage", 2)
}

func TestListReviews_HidesContactDetails(t *testing.T) {
	f := newFixture()
	f.hostels.On("Exists", mock.Anything, int64(2)).Return(true, nil)
	f.reviews.On("ListByHostel", mock.Anything, int64(2), 0, 100).Return([]domain.Review{
		{ID: 1, HostelID: 2, UserID: 3, Rating: 4, Comment: "nice", User: &domain.User{Name: "Asha", Email: "asha@example.com"}},
	}, nil)

	out, err := f.svc.ListReviews(context.Background(), 2, 0, 100)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Asha", out[0].UserName)

	f.hostels.On("Exists", mock.Anything, int64(9)).Return(false, nil)
	_, err = f.svc.ListReviews(context.Background(), 9, 0, 100)
	assert.ErrorIs(t, err, ErrHostelNotFound)
}

func TestSearch_PassesFilter(t *testing.T) {
	f := newFixture()
	want := repository.HostelFilter{City: "Pune", MaxRent: 6000, Amenities: []string{"wifi"}}
	f.hostels.On("Search", mock.Anything, want).Return([]domain.Hostel{{ID: 1}}, nil)

	out, err := f.svc.Search(context.Background(), SearchQuery{City: " Pune ", MaxRent: 6000, Amenities: []string{"wifi"}})
	require.NoError(t, err)
	assert.Len(t, out, 1)
}

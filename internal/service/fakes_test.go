package service

import (
	"alcyxob/training-app/internal/domain"
	"alcyxob/training-app/internal/repository"
	"context"
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes for the service tests.

type fakeTraineeRepo struct {
	trainees map[primitive.ObjectID]*domain.Trainee
}

func newFakeTraineeRepo() *fakeTraineeRepo {
	return &fakeTraineeRepo{trainees: make(map[primitive.ObjectID]*domain.Trainee)}
}

func (r *fakeTraineeRepo) Create(_ context.Context, trainee *domain.Trainee) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	stored := *trainee
	stored.ID = id
	if stored.Flags == nil {
		stored.Flags = []domain.Flag{}
	}
	r.trainees[id] = &stored
	return id, nil
}

func (r *fakeTraineeRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Trainee, error) {
	trainee, ok := r.trainees[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *trainee
	return &copied, nil
}

func (r *fakeTraineeRepo) List(_ context.Context) ([]domain.Trainee, error) {
	out := make([]domain.Trainee, 0, len(r.trainees))
	for _, t := range r.trainees {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.Hex() < out[j].ID.Hex() })
	return out, nil
}

func (r *fakeTraineeRepo) AdjustPoints(_ context.Context, id primitive.ObjectID, delta int) error {
	trainee, ok := r.trainees[id]
	if !ok {
		return repository.ErrNotFound
	}
	trainee.Points += delta
	return nil
}

func (r *fakeTraineeRepo) AppendFlag(_ context.Context, id primitive.ObjectID, flag domain.Flag) error {
	trainee, ok := r.trainees[id]
	if !ok {
		return repository.ErrNotFound
	}
	trainee.Flags = append(trainee.Flags, flag)
	trainee.Points += flag.PointsDelta
	return nil
}

type fakeCourseRepo struct {
	courses map[primitive.ObjectID]*domain.Course
}

func newFakeCourseRepo() *fakeCourseRepo {
	return &fakeCourseRepo{courses: make(map[primitive.ObjectID]*domain.Course)}
}

func (r *fakeCourseRepo) Create(_ context.Context, course *domain.Course) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	stored := *course
	stored.ID = id
	r.courses[id] = &stored
	return id, nil
}

func (r *fakeCourseRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Course, error) {
	course, ok := r.courses[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *course
	return &copied, nil
}

func (r *fakeCourseRepo) GetByTraineeID(_ context.Context, traineeID primitive.ObjectID) ([]domain.Course, error) {
	var out []domain.Course
	for _, c := range r.courses {
		if c.TraineeID == traineeID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeCourseRepo) Update(_ context.Context, course *domain.Course) error {
	if _, ok := r.courses[course.ID]; !ok {
		return repository.ErrNotFound
	}
	stored := *course
	r.courses[course.ID] = &stored
	return nil
}

func (r *fakeCourseRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.courses[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.courses, id)
	return nil
}

func (r *fakeCourseRepo) Counts(_ context.Context, traineeID primitive.ObjectID) (total, completed int64, err error) {
	for _, c := range r.courses {
		if c.TraineeID != traineeID {
			continue
		}
		total++
		if c.Status == domain.CourseCompleted {
			completed++
		}
	}
	return total, completed, nil
}

type fakeSessionRepo struct {
	sessions map[primitive.ObjectID]*domain.TrainingSession
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[primitive.ObjectID]*domain.TrainingSession)}
}

func (r *fakeSessionRepo) Create(_ context.Context, session *domain.TrainingSession) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	stored := *session
	stored.ID = id
	r.sessions[id] = &stored
	return id, nil
}

func (r *fakeSessionRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.TrainingSession, error) {
	session, ok := r.sessions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *session
	return &copied, nil
}

func (r *fakeSessionRepo) GetByTraineeID(_ context.Context, traineeID primitive.ObjectID) ([]domain.TrainingSession, error) {
	var out []domain.TrainingSession
	for _, s := range r.sessions {
		if s.TraineeID == traineeID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeSessionRepo) Update(_ context.Context, session *domain.TrainingSession) error {
	if _, ok := r.sessions[session.ID]; !ok {
		return repository.ErrNotFound
	}
	stored := *session
	r.sessions[session.ID] = &stored
	return nil
}

func (r *fakeSessionRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.sessions[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.sessions, id)
	return nil
}

func (r *fakeSessionRepo) Counts(_ context.Context, traineeID primitive.ObjectID) (total, completed int64, err error) {
	for _, s := range r.sessions {
		if s.TraineeID != traineeID {
			continue
		}
		total++
		if s.Status == domain.SessionCompleted {
			completed++
		}
	}
	return total, completed, nil
}

type fakeCertificateRepo struct {
	certs map[primitive.ObjectID]*domain.Certificate // keyed by course id
}

func newFakeCertificateRepo() *fakeCertificateRepo {
	return &fakeCertificateRepo{certs: make(map[primitive.ObjectID]*domain.Certificate)}
}

func (r *fakeCertificateRepo) Create(_ context.Context, cert *domain.Certificate) (primitive.ObjectID, error) {
	if _, ok := r.certs[cert.CourseID]; ok {
		return primitive.NilObjectID, repository.ErrUpdateFailed
	}
	id := primitive.NewObjectID()
	stored := *cert
	stored.ID = id
	r.certs[cert.CourseID] = &stored
	return id, nil
}

func (r *fakeCertificateRepo) GetByCourseID(_ context.Context, courseID primitive.ObjectID) (*domain.Certificate, error) {
	cert, ok := r.certs[courseID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *cert
	return &copied, nil
}

type fakeCheckInRepo struct {
	checkIns []domain.CheckIn
}

func newFakeCheckInRepo() *fakeCheckInRepo {
	return &fakeCheckInRepo{}
}

func (r *fakeCheckInRepo) Create(_ context.Context, checkIn *domain.CheckIn) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	stored := *checkIn
	stored.ID = id
	r.checkIns = append(r.checkIns, stored)
	return id, nil
}

func (r *fakeCheckInRepo) GetByTraineeID(_ context.Context, traineeID primitive.ObjectID) ([]domain.CheckIn, error) {
	var out []domain.CheckIn
	for _, c := range r.checkIns {
		if c.TraineeID == traineeID {
			out = append(out, c)
		}
	}
	return out, nil
}

package services

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"taskhive/model"
)

const (
	usersCollection  = "Users"
	tasksCollection  = "Tasks"
	ledgerCollection = "ScoreEntries"
)

// FirestoreStore persists tasks, users and the score ledger in Firestore.
type FirestoreStore struct {
	client *firestore.Client
}

func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) CreateTask(ctx context.Context, task *model.Task) error {
	_, err := s.client.Collection(tasksCollection).Doc(task.TaskID).Set(ctx, task)
	return err
}

func (s *FirestoreStore) GetTask(ctx context.Context, id string) (*model.Task, error) {
	snap, err := s.client.Collection(tasksCollection).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var task model.Task
	if err := snap.DataTo(&task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *FirestoreStore) ListTasksForActor(ctx context.Context, actorID string, filter TaskFilter) ([]*model.Task, error) {
	col := s.client.Collection(tasksCollection)

	// Three queries cover owner, legacy creator and collaborator visibility;
	// status filtering happens in memory since Firestore cannot match a
	// subfield of an array element.
	queries := []firestore.Query{
		col.Where("owner", "==", actorID),
		col.Where("user", "==", actorID),
		col.Where("collabuserids", "array-contains", actorID),
	}

	seen := make(map[string]bool)
	var out []*model.Task
	now := time.Now()
	for _, q := range queries {
		docs, err := q.Documents(ctx).GetAll()
		if err != nil {
			return nil, err
		}
		for _, doc := range docs {
			var task model.Task
			if err := doc.DataTo(&task); err != nil {
				return nil, err
			}
			if seen[task.TaskID] {
				continue
			}
			seen[task.TaskID] = true
			if matchesFilter(&task, actorID, filter, now) {
				out = append(out, &task)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *FirestoreStore) SaveTask(ctx context.Context, task *model.Task) error {
	_, err := s.client.Collection(tasksCollection).Doc(task.TaskID).Set(ctx, task)
	return err
}

func (s *FirestoreStore) DeleteTask(ctx context.Context, id string) error {
	_, err := s.client.Collection(tasksCollection).Doc(id).Delete(ctx)
	return err
}

func (s *FirestoreStore) GetUser(ctx context.Context, id string) (*model.User, error) {
	snap, err := s.client.Collection(usersCollection).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var user model.User
	if err := snap.DataTo(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *FirestoreStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	docs, err := s.client.Collection(usersCollection).Where("email", "==", email).Limit(1).Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, ErrNotFound
	}
	var user model.User
	if err := docs[0].DataTo(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *FirestoreStore) CreateUser(ctx context.Context, user *model.User) error {
	_, err := s.client.Collection(usersCollection).Doc(user.UserID).Set(ctx, user)
	return err
}

func (s *FirestoreStore) SaveUser(ctx context.Context, user *model.User) error {
	_, err := s.client.Collection(usersCollection).Doc(user.UserID).Set(ctx, user)
	return err
}

func (s *FirestoreStore) CommitTaskScore(ctx context.Context, task *model.Task, entry *model.ScoreEntry) error {
	return s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		points, err := s.clampedPoints(tx, entry)
		if err != nil {
			return err
		}
		if err := tx.Set(s.client.Collection(tasksCollection).Doc(task.TaskID), task); err != nil {
			return err
		}
		return s.writeEntry(tx, entry, points)
	})
}

func (s *FirestoreStore) DeleteTaskScore(ctx context.Context, taskID string, entry *model.ScoreEntry) error {
	return s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		points, err := s.clampedPoints(tx, entry)
		if err != nil {
			return err
		}
		if err := tx.Delete(s.client.Collection(tasksCollection).Doc(taskID)); err != nil {
			return err
		}
		return s.writeEntry(tx, entry, points)
	})
}

// clampedPoints reads the acting user inside the transaction and returns
// their new balance. Transactions require all reads before any write.
func (s *FirestoreStore) clampedPoints(tx *firestore.Transaction, entry *model.ScoreEntry) (int, error) {
	if entry == nil {
		return 0, nil
	}
	snap, err := tx.Get(s.client.Collection(usersCollection).Doc(entry.ActorID))
	if status.Code(err) == codes.NotFound {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	var user model.User
	if err := snap.DataTo(&user); err != nil {
		return 0, err
	}
	points := user.Points + entry.Delta
	if points < 0 {
		points = 0
	}
	return points, nil
}

func (s *FirestoreStore) writeEntry(tx *firestore.Transaction, entry *model.ScoreEntry, points int) error {
	if entry == nil {
		return nil
	}
	userRef := s.client.Collection(usersCollection).Doc(entry.ActorID)
	if err := tx.Set(userRef, map[string]interface{}{"points": points}, firestore.MergeAll); err != nil {
		return err
	}
	return tx.Set(s.client.Collection(ledgerCollection).Doc(entry.EntryID), entry)
}

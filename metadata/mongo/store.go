package mongometadata

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lumengive/stellar-sdk/metadata"
)

const projectCollection = "projects"

type store struct {
	client *mongo.Client
	col    *mongo.Collection
}

func NewStore(ctx context.Context, uri, dbName string) (metadata.Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		return nil, err
	}

	return &store{
		client: client,
		col:    client.Database(dbName).Collection(projectCollection),
	}, nil
}

func (s *store) CreateProject(ctx context.Context, project metadata.Project) error {
	_, err := s.col.InsertOne(ctx, project)
	return err
}

func (s *store) UpdateProject(ctx context.Context, project metadata.Project) error {
	_, err := s.col.UpdateOne(
		ctx,
		bson.M{"id": project.ID},
		bson.M{"$set": bson.M{
			"title":       project.Title,
			"description": project.Description,
			"goal":        project.Goal,
			"tx_hash":     project.TxHash,
			"updated_at":  project.UpdatedAt,
		}},
	)
	return err
}

func (s *store) GetProject(
	ctx context.Context, id string,
) (*metadata.Project, error) {
	var project metadata.Project
	err := s.col.FindOne(ctx, bson.M{"id": id}).Decode(&project)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &project, nil
}

func (s *store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

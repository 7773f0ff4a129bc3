// Command mgplan reads a JSON scene description and plans a multi-grasp
// transport motion through it, printing the resulting path to stdout.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"

	"github.com/JoshuaHaustein/hfts-grasp-planner/mgsearch"
)

func main() {
	if err := realMain(); err != nil {
		log.Fatal(err)
	}
}

func realMain() error {
	verbose := flag.Bool("v", false, "verbose")
	graphType := flag.String("graph", "single", "graph adapter: single, multi, folded-stationary, folded-dynamic")
	lambda := flag.Float64("lambda", 1.0, "goal quality tradeoff")
	flag.Parse()

	if len(flag.Args()) == 0 {
		return errors.New("need a json scene file")
	}

	logger := golog.NewDevelopmentLogger("mgplan")
	if *verbose {
		logger = golog.NewDebugLogger("mgplan")
	}

	content, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		return err
	}

	var scene sceneFile
	if err := json.Unmarshal(content, &scene); err != nil {
		return errors.Wrap(err, "parsing scene file")
	}

	space, err := newSphereObstacleSpace(scene)
	if err != nil {
		return err
	}

	params := mgsearch.DefaultParams()
	params.Lambda = *lambda
	switch *graphType {
	case "single":
		params.Graph = mgsearch.SingleGraspGraphType
	case "multi":
		params.Graph = mgsearch.MultiGraspGraphType
	case "folded-stationary":
		params.Graph = mgsearch.FoldedStationaryGraphType
	case "folded-dynamic":
		params.Graph = mgsearch.FoldedDynamicGraphType
	default:
		return errors.Errorf("unknown graph type %q", *graphType)
	}

	planner := mgsearch.NewPlanner(space, params, mgsearch.WithLogger(logger))

	for _, g := range scene.Grasps {
		if err := space.AddGrasp(g.toGrasp()); err != nil {
			return err
		}
	}
	for _, g := range scene.Goals {
		if err := planner.AddGoal(g.toGoal()); err != nil {
			return err
		}
	}

	var grasps []mgsearch.GraspID
	for _, g := range scene.Grasps {
		grasps = append(grasps, mgsearch.GraspID(g.ID))
	}

	result, err := planner.Plan(context.Background(), mgsearch.Config(scene.Start), mgsearch.GraspID(scene.StartGrasp), grasps)
	if err != nil {
		return err
	}
	if !result.Solved {
		fmt.Println("no solution found")
		return nil
	}

	fmt.Printf("solved: cost=%g path_cost=%g goal_cost=%g\n", result.Cost(), result.PathCost, result.GoalCost)
	for i, v := range result.Path {
		fmt.Printf("  [%d] node=%d\n", i, v)
	}
	return nil
}

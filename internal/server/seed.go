package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hansolyoo/cardtalk/internal/cardtalk"
)

type seedCategory struct {
	category  cardtalk.Category
	questions []string
}

var demoCatalog = []seedCategory{
	{
		category: cardtalk.Category{
			ID: "romance", Name: "연애", Description: "설레는 마음을 꺼내보는 질문",
			Icon: "💖", Color: "bg-rose-400",
		},
		questions: []string{
			"첫눈에 반한 적이 있나요? 그때 이야기를 들려주세요.",
			"연인과 꼭 함께 가보고 싶은 여행지는 어디인가요?",
			"상대방의 어떤 모습에 가장 설레나요?",
			"기억에 남는 최고의 데이트는 무엇이었나요?",
			"연애할 때 절대 포기할 수 없는 한 가지는?",
			"사랑한다는 말 대신 쓰고 싶은 나만의 표현이 있나요?",
			"다투고 난 뒤 화해하는 나만의 방법은?",
			"연인에게 받았던 선물 중 가장 기억에 남는 것은?",
			"결혼에 대해 어떻게 생각하나요?",
			"이상형이 어릴 때와 비교해 달라졌나요?",
			"연인과 취향이 정반대라면 어떻게 맞춰가고 싶나요?",
			"고백은 직접 하는 편인가요, 기다리는 편인가요?",
			"장거리 연애도 가능하다고 생각하나요?",
			"연애에서 가장 중요한 가치는 무엇이라고 생각하나요?",
		},
	},
	{
		category: cardtalk.Category{
			ID: "first-meet", Name: "첫만남", Description: "어색함을 깨는 가벼운 질문",
			Icon: "🤝", Color: "bg-amber-400",
		},
		questions: []string{
			"자기소개를 세 단어로 한다면?",
			"요즘 가장 빠져 있는 것은 무엇인가요?",
			"주말에는 주로 무엇을 하며 보내나요?",
			"최근에 본 것 중 가장 재미있었던 콘텐츠는?",
			"아침형 인간인가요, 저녁형 인간인가요?",
			"스트레스를 푸는 나만의 방법이 있나요?",
			"올해 꼭 이루고 싶은 목표가 있다면?",
			"가장 좋아하는 음식과 싫어하는 음식은?",
			"여행은 계획파인가요, 즉흥파인가요?",
			"최근에 새로 시작한 일이 있나요?",
			"어릴 적 꿈은 무엇이었나요?",
			"지금 살고 있는 동네의 장점을 자랑해 주세요.",
		},
	},
	{
		category: cardtalk.Category{
			ID: "friends", Name: "친구", Description: "우정을 더 깊게 만드는 질문",
			Icon: "💬", Color: "bg-sky-400",
		},
		questions: []string{
			"우리가 처음 만났던 날을 기억하나요?",
			"나의 첫인상은 어땠나요?",
			"함께한 추억 중 가장 웃겼던 순간은?",
			"서로에게 고마웠지만 말하지 못했던 것이 있나요?",
			"나에게 바라는 점이 하나 있다면?",
			"우리 우정을 색깔로 표현한다면 무슨 색일까요?",
			"둘이서 꼭 해보고 싶은 버킷리스트가 있나요?",
			"내가 힘들 때 어떤 위로가 가장 힘이 되나요?",
			"서로 반대였던 취향이 닮아진 게 있나요?",
			"10년 뒤 우리는 어떤 모습일까요?",
		},
	},
	{
		category: cardtalk.Category{
			ID: "values", Name: "가치관", Description: "서로를 깊이 이해하는 질문",
			Icon: "🧭", Color: "bg-emerald-400",
		},
		questions: []string{
			"인생에서 가장 중요하게 생각하는 가치는 무엇인가요?",
			"돈과 시간 중 하나만 고른다면 무엇을 택하겠어요?",
			"실패했지만 후회하지 않는 선택이 있나요?",
			"타인에게 절대 양보할 수 없는 원칙이 있나요?",
			"행복은 무엇이라고 생각하나요?",
			"과거로 돌아갈 수 있다면 언제로 가고 싶나요?",
			"나를 가장 많이 바꾼 사건은 무엇이었나요?",
			"죽기 전에 꼭 해보고 싶은 일 세 가지는?",
			"성공의 기준을 스스로 어떻게 정의하나요?",
			"어떤 사람으로 기억되고 싶나요?",
		},
	},
	{
		category: cardtalk.Category{
			ID: "random", Name: "랜덤", Description: "뭐가 나올지 모르는 돌발 질문",
			Icon: "🎯", Color: "bg-violet-400",
		},
		questions: []string{
			"초능력을 하나 가질 수 있다면 무엇을 고르겠어요?",
			"무인도에 세 가지만 가져갈 수 있다면?",
			"하루 동안 다른 사람이 될 수 있다면 누가 되고 싶나요?",
			"복권 1등에 당첨되면 제일 먼저 뭘 할 건가요?",
			"내 인생을 영화로 만든다면 제목은?",
			"평생 한 가지 음식만 먹어야 한다면?",
			"시간이 멈추는 버튼이 있다면 언제 누르고 싶나요?",
			"동물로 태어난다면 어떤 동물이 되고 싶나요?",
			"지금 당장 세계 어디로든 갈 수 있다면?",
			"나만 아는 이상한 습관이 있나요?",
		},
	},
}

// SeedDemo loads the demo question catalog if the categories table is
// empty. Idempotent: does nothing when any category exists.
func SeedDemo(ctx context.Context, logger *slog.Logger, store *SQLiteStore) error {
	n, err := store.countCategories(ctx)
	if err != nil {
		return fmt.Errorf("counting categories: %w", err)
	}
	if n > 0 {
		return nil
	}

	total := 0
	for ci, sc := range demoCatalog {
		if err := store.insertCategory(ctx, sc.category, ci); err != nil {
			return fmt.Errorf("seeding category %s: %w", sc.category.ID, err)
		}
		for qi, text := range sc.questions {
			q := cardtalk.Question{
				ID:         fmt.Sprintf("%s-%02d", sc.category.ID, qi+1),
				CategoryID: sc.category.ID,
				Text:       text,
			}
			if err := store.insertQuestion(ctx, q, qi); err != nil {
				return fmt.Errorf("seeding question %s: %w", q.ID, err)
			}
			total++
		}
	}

	logger.Info("demo catalog seeded", "categories", len(demoCatalog), "questions", total)
	return nil
}

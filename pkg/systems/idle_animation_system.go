package systems

import (
	"log"
	"math"

	"github.com/gonewx/towerviz/pkg/components"
	"github.com/gonewx/towerviz/pkg/config"
	"github.com/gonewx/towerviz/pkg/ecs"
	"github.com/gonewx/towerviz/pkg/scenegraph"
	"github.com/gonewx/towerviz/pkg/types"
)

// 闪烁/序列动画中未点亮部件的透明度
const (
	idleDimAlpha      = 0.35
	idleSequenceScale = 1.3
)

// IdleAnimationSystem 塔的待机动画系统
//
// 职责:
//  1. 消费 IdleAnimationCommandComponent（每座塔一次），挂载 IdleMotionComponent
//  2. 每帧按原型的运动风格驱动合成树中的具名部件
//
// 部件按名称定位（PartName），找不到的部件直接跳过，
// 因此构建器增删部件不会让动画系统报错。
type IdleAnimationSystem struct {
	entityManager *ecs.EntityManager
	config        *config.TowerVisualConfig
}

// NewIdleAnimationSystem 创建待机动画系统
// cfg 为 nil 时使用默认配置
func NewIdleAnimationSystem(em *ecs.EntityManager, cfg *config.TowerVisualConfig) *IdleAnimationSystem {
	if cfg == nil {
		cfg = config.DefaultTowerVisualConfig()
	}
	return &IdleAnimationSystem{
		entityManager: em,
		config:        cfg,
	}
}

// Update 处理新命令并推进所有待机动画
func (s *IdleAnimationSystem) Update(deltaTime float64) {
	s.processCommands()

	entities := ecs.GetEntitiesWith2[*components.IdleMotionComponent, *components.TowerVisualComponent](s.entityManager)
	for _, id := range entities {
		motion, _ := ecs.GetComponent[*components.IdleMotionComponent](s.entityManager, id)
		visual, _ := ecs.GetComponent[*components.TowerVisualComponent](s.entityManager, id)
		if visual.Root == nil {
			continue
		}

		motion.Elapsed += deltaTime
		s.apply(motion, visual)
	}
}

// processCommands 把未处理的启动命令转换为运行中的动画状态
//
// 命令执行后标记 Processed 并移除，实体上只保留 IdleMotionComponent。
// 没有 TowerVisualComponent 的实体同样标记为已处理，避免每帧重试。
func (s *IdleAnimationSystem) processCommands() {
	entities := ecs.GetEntitiesWith1[*components.IdleAnimationCommandComponent](s.entityManager)

	for _, id := range entities {
		cmd, ok := ecs.GetComponent[*components.IdleAnimationCommandComponent](s.entityManager, id)
		if !ok || cmd.Processed {
			continue
		}
		cmd.Processed = true

		if !ecs.HasComponent[*components.TowerVisualComponent](s.entityManager, id) {
			log.Printf("[IdleAnimationSystem] Warning: entity %d has an idle command but no visual", id)
			ecs.RemoveComponent[*components.IdleAnimationCommandComponent](s.entityManager, id)
			continue
		}

		if !cmd.Archetype.IsValid() {
			log.Printf("[IdleAnimationSystem] Warning: entity %d has invalid archetype %d", id, cmd.Archetype)
			ecs.RemoveComponent[*components.IdleAnimationCommandComponent](s.entityManager, id)
			continue
		}

		style := types.IdleMotionFor(cmd.Archetype)
		ecs.AddComponent(s.entityManager, id, &components.IdleMotionComponent{
			Style: style,
			Phase: phaseFor(id),
			Step:  -1,
		})
		ecs.RemoveComponent[*components.IdleAnimationCommandComponent](s.entityManager, id)

		log.Printf("[IdleAnimationSystem] Started %s idle for entity %d (%s)", style, id, cmd.Archetype)
	}
}

// phaseFor 按实体 ID 分配初始相位，同一批创建的塔不会同步脉冲
func phaseFor(id ecs.EntityID) float64 {
	return float64(id%16) * (2 * math.Pi / 16)
}

func (s *IdleAnimationSystem) apply(motion *components.IdleMotionComponent, visual *components.TowerVisualComponent) {
	root := visual.Root
	idle := s.config.Idle

	// 史诗及以上的外环与原型无关，始终旋转
	if ring := root.Slot(types.SlotOuterGlow).Part(types.PartRotatingRing); ring != nil {
		ring.Rotation = motion.Phase + motion.Elapsed*idle.RotateSpeed
	}

	switch motion.Style {
	case types.IdleRotate:
		s.applyRotate(motion, visual)
	case types.IdlePulse:
		s.applyPulse(motion, visual)
	case types.IdleOrbit:
		s.applyOrbit(motion, visual)
	case types.IdleFlicker:
		s.applyFlicker(motion, visual)
	case types.IdleSequence:
		s.applySequence(motion, visual)
	}
}

// applyRotate 弹射型瞄准外环顺时针旋转；传说型神圣光线反向旋转
func (s *IdleAnimationSystem) applyRotate(motion *components.IdleMotionComponent, visual *components.TowerVisualComponent) {
	angle := motion.Phase + motion.Elapsed*s.config.Idle.RotateSpeed

	if ring := visual.Root.Slot(types.SlotBody).Part(types.PartTargetRingOuter); ring != nil {
		ring.Rotation = angle
	}

	platform := visual.Root.Slot(types.SlotBasePlatform)
	for i := 0; ; i++ {
		ray := platform.Part(types.PartDivineRay.Index(i))
		if ray == nil {
			break
		}
		ray.Rotation = -angle * 0.5
	}
}

// PulseAlpha 脉冲透明度：在 [minAlpha, 1] 之间按正弦往复
func PulseAlpha(elapsed, period, phase, minAlpha float64) float64 {
	if period <= 0 {
		return 1
	}
	wave := 0.5 + 0.5*math.Sin(2*math.Pi*elapsed/period+phase)
	return minAlpha + (1-minAlpha)*wave
}

// applyPulse 内层光晕和原型的核心部件一起呼吸
func (s *IdleAnimationSystem) applyPulse(motion *components.IdleMotionComponent, visual *components.TowerVisualComponent) {
	idle := s.config.Idle
	alpha := PulseAlpha(motion.Elapsed, idle.PulsePeriod, motion.Phase, idle.PulseMinAlpha)

	if glow := visual.Root.Slot(types.SlotGlow); glow != nil {
		glow.Alpha = alpha
	}

	var part types.PartName
	switch visual.Archetype {
	case types.ArchetypeArtillery:
		part = types.PartAmmoIndicator
	case types.ArchetypeBeam:
		part = types.PartLens
	case types.ArchetypePyro:
		part = types.PartPilotFlame
	case types.ArchetypeExecute:
		part = types.PartWarningTriangle
	default:
		return
	}
	if n := visual.Root.Slot(types.SlotBody).Part(part); n != nil {
		n.Alpha = alpha
	}
}

// applyOrbit 冰晶/符文沿各自轨道半径匀速环绕，保持等角间隔
func (s *IdleAnimationSystem) applyOrbit(motion *components.IdleMotionComponent, visual *components.TowerVisualComponent) {
	offset := motion.Phase + motion.Elapsed*s.config.Idle.OrbitSpeed

	switch visual.Archetype {
	case types.ArchetypeFrost:
		orbitParts(visual.Root.Slot(types.SlotDetails), types.PartIceShard, offset, true)
	case types.ArchetypeMagic:
		orbitParts(visual.Root.Slot(types.SlotBody), types.PartRune, offset, false)
	}
}

// orbitParts 把 base_0..base_{n-1} 排布在起始角 -90° 的等分轨道上并整体偏移 offset
// faceOutward 为 true 时部件长轴朝外
func orbitParts(parent *scenegraph.Node, base types.PartName, offset float64, faceOutward bool) {
	if parent == nil {
		return
	}
	var parts []*scenegraph.Node
	for i := 0; ; i++ {
		p := parent.Part(base.Index(i))
		if p == nil {
			break
		}
		parts = append(parts, p)
	}

	n := float64(len(parts))
	for i, p := range parts {
		radius := math.Hypot(p.Position.X, p.Position.Y)
		angle := -math.Pi/2 + float64(i)*2*math.Pi/n + offset
		p.Position = scenegraph.Polar(radius, angle)
		if faceOutward {
			p.Rotation = angle + math.Pi/2
		}
	}
}

// applyFlicker 电塔放电节点按固定间隔随机明灭
func (s *IdleAnimationSystem) applyFlicker(motion *components.IdleMotionComponent, visual *components.TowerVisualComponent) {
	step := int(motion.Elapsed / s.config.Idle.FlickerInterval)
	if step == motion.Step {
		return
	}
	motion.Step = step

	body := visual.Root.Slot(types.SlotBody)
	lit := 0
	for i := 0; ; i++ {
		node := body.Part(types.PartDischargeNode.Index(i))
		if node == nil {
			break
		}
		if flickerOn(uint32(step), uint32(i), motion.Phase) {
			node.Alpha = 1
			lit++
		} else {
			node.Alpha = idleDimAlpha
		}
	}

	if conductor := body.Part(types.PartConductor); conductor != nil {
		conductor.Alpha = idleDimAlpha + (1-idleDimAlpha)*math.Min(1, float64(lit)/2)
	}
}

// flickerOn 确定性的伪随机明灭：同一步、同一节点结果固定，便于测试和回放
func flickerOn(step, index uint32, phase float64) bool {
	h := step*2654435761 ^ index*40503 ^ uint32(phase*1000)
	h ^= h >> 13
	h *= 0x5bd1e995
	h ^= h >> 15
	return h&1 == 1
}

// applySequence 多重射击的处理节点依次点亮，对应连线同步
func (s *IdleAnimationSystem) applySequence(motion *components.IdleMotionComponent, visual *components.TowerVisualComponent) {
	step := int(motion.Elapsed / s.config.Idle.SequenceInterval)
	if step == motion.Step {
		return
	}
	motion.Step = step

	body := visual.Root.Slot(types.SlotBody)
	count := 0
	for body.Part(types.PartProcessNode.Index(count)) != nil {
		count++
	}
	if count == 0 {
		return
	}
	active := step % count

	for i := 0; i < count; i++ {
		node := body.Part(types.PartProcessNode.Index(i))
		link := body.Part(types.PartProcessLink.Index(i))
		if i == active {
			node.Alpha = 1
			node.SetScale(idleSequenceScale)
		} else {
			node.Alpha = idleDimAlpha
			node.SetScale(1)
		}
		if link != nil {
			link.Alpha = node.Alpha
		}
	}
}
